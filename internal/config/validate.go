package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.LLM.ClassifyTimeout <= 0 {
		return fmt.Errorf("llm.classify_timeout must be > 0 (got %v)", c.LLM.ClassifyTimeout)
	}
	if c.LLM.GenerateTimeout <= 0 {
		return fmt.Errorf("llm.generate_timeout must be > 0 (got %v)", c.LLM.GenerateTimeout)
	}

	if c.Knowledge.Scheme != "http" && c.Knowledge.Scheme != "https" {
		return fmt.Errorf("knowledge.scheme must be http or https (got %q)", c.Knowledge.Scheme)
	}
	if c.Knowledge.TopK <= 0 {
		return fmt.Errorf("knowledge.top_k must be > 0 (got %d)", c.Knowledge.TopK)
	}

	if err := c.Moderation.validate(); err != nil {
		return fmt.Errorf("moderation: %w", err)
	}

	return nil
}

func (m *ModerationConfig) validate() error {
	if m.ConfidenceThreshold < 0 || m.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0,1] (got %v)", m.ConfidenceThreshold)
	}
	if m.ListPageSize <= 0 {
		return fmt.Errorf("list_page_size must be > 0 (got %d)", m.ListPageSize)
	}

	m.ConcernKeywords = ParseKeywords(m.ConcernKeywordsRaw)
	if len(m.ConcernKeywords) == 0 {
		return fmt.Errorf("concern_keywords must not be empty")
	}

	return nil
}
