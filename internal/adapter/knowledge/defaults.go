package knowledge

import "fmt"

// builtinKnowledge is the fallback material served when the vector store is
// empty or unreachable.
var builtinKnowledge = map[string]string{
	"saving": `Saving money means keeping some of your money safe instead of spending it all right away.
When you save money, you can use it later for something special or important. It's like
storing your favorite snacks for later instead of eating them all at once!

Why is saving important?
- It helps you buy bigger things you really want
- It keeps you prepared for surprises
- It helps your money grow over time
- It teaches you to make smart choices

Tips for saving:
- Put aside a little bit every time you get money
- Keep your savings in a safe place
- Think about what you're saving for
- Celebrate when you reach your saving goals`,

	"budgeting": `A budget is a plan for your money. It helps you decide how to use your money wisely.
Think of it like planning your homework time - you decide what to work on and when!

Creating a budget:
- Write down how much money you have
- List what you need to buy
- List what you want to buy
- Make sure you don't spend more than you have

A good budget helps you:
- Have money for things you need
- Save for things you want
- Avoid spending too much
- Feel in control of your money`,

	"needs_vs_wants": `Needs are things you must have to live and be healthy. Wants are things that are nice
to have but you can live without them.

Examples of NEEDS:
- Food and water
- A place to live
- Clothes to wear
- Medicine when you're sick

Examples of WANTS:
- Toys and games
- Candy and treats
- New video games
- Fancy clothes

Smart money choices mean taking care of needs first, then thinking about wants.`,
}

func defaultKnowledge(concept, difficulty string) string {
	if text, ok := builtinKnowledge[concept]; ok {
		return text
	}
	return fmt.Sprintf("Knowledge about %s for %s level learners.", concept, difficulty)
}
