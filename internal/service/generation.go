package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pageza/pantrychef/backend/internal/llm"
	"go.uber.org/zap"
)

const (
	substituteSystemPrompt = "You are a helpful assistant that provides ingredient substitutions."
	servingsSystemPrompt   = "You are a helpful assistant that adjusts recipes."
	substituteMaxTokens    = 50
	recipeFormatNotice     = "Do not give an introduction paragraph. Just the title, ingredients, and instructions. Give numbered instructions: 1. 2. 3. etc."
	noRecipesNotice        = `If the user presents an unrelated question or a recipe name that is unsafe or unedible, please respond with "No Recipes Found."`
)

// GenerationService builds prompts and forwards them to the generation
// gateway. It keeps no state between calls.
type GenerationService struct {
	recipes llm.Generator
	named   llm.Generator
	chat    llm.Generator
	logger  *zap.Logger
}

// NewGenerationService wires the three gateways: the ingredient recipe
// assistant, the named recipe assistant and the chat model.
func NewGenerationService(recipes, named, chat llm.Generator, logger *zap.Logger) *GenerationService {
	return &GenerationService{
		recipes: recipes,
		named:   named,
		chat:    chat,
		logger:  logger.Named("generation"),
	}
}

// GenerateRecipe asks for a recipe built from the given ingredients
func (s *GenerationService) GenerateRecipe(ctx context.Context, ingredients, allergies []string, servings string) (string, error) {
	ingredients = cleanList(ingredients)
	if len(ingredients) == 0 {
		return "", validationError("Ingredients are required and must be an array.")
	}

	req := llm.Request{Sections: []string{
		fmt.Sprintf("Create a recipe using these ingredients: %s.", strings.Join(ingredients, ", ")),
		allergyNotice(allergies),
		servingsNotice(servings),
		recipeFormatNotice,
	}}
	return s.generate(ctx, s.recipes, req, "An error occurred while generating the recipe.")
}

// GenerateNamedRecipe asks for a recipe for a dish name
func (s *GenerationService) GenerateNamedRecipe(ctx context.Context, recipeName string, allergies []string, servings string) (string, error) {
	recipeName = strings.TrimSpace(recipeName)
	if recipeName == "" {
		return "", validationError("A valid recipe name is required.")
	}

	req := llm.Request{Sections: []string{
		fmt.Sprintf("Create a recipe for %s.", recipeName),
		allergyNotice(allergies),
		servingsNotice(servings),
		recipeFormatNotice,
		noRecipesNotice,
	}}
	return s.generate(ctx, s.named, req, "An error occurred while generating the recipe.")
}

// SuggestSubstitute asks for a single replacement ingredient
func (s *GenerationService) SuggestSubstitute(ctx context.Context, ingredient string, allergies, alreadyUsed []string) (string, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return "", validationError("Ingredient is required.")
	}

	req := llm.Request{
		System: substituteSystemPrompt,
		Sections: []string{
			fmt.Sprintf("Provide a substitute for this ingredient: %s.", ingredient),
			substituteAllergyNotice(allergies),
			alreadyUsedNotice(alreadyUsed),
			"Your answer should only include the ingredient name and measurement, and no other words.",
		},
		MaxOutputTokens: substituteMaxTokens,
	}
	return s.generate(ctx, s.chat, req, "Failed to generate a substitute.")
}

// SuggestSubstitutes asks for five numbered replacement ingredients
func (s *GenerationService) SuggestSubstitutes(ctx context.Context, ingredient string, allergies, alreadyUsed []string) (string, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return "", validationError("Ingredient is required.")
	}

	req := llm.Request{
		System: substituteSystemPrompt,
		Sections: []string{
			fmt.Sprintf("Provide 5 unique substitutes for this ingredient: %s.", ingredient),
			substituteAllergyNotice(allergies),
			alreadyUsedNotice(alreadyUsed),
			"Your answer should only include the substitute names and measurements (if applicable), and no other words or text.",
			"Substitutes should be listed using a numerical list 1. 2. 3. 4. 5.",
		},
		MaxOutputTokens: substituteMaxTokens,
	}
	return s.generate(ctx, s.chat, req, "Failed to generate substitutes.")
}

// AdjustServings rewrites a recipe's amounts for a new number of servings
func (s *GenerationService) AdjustServings(ctx context.Context, recipe, servings string) (string, error) {
	if strings.TrimSpace(recipe) == "" || strings.TrimSpace(servings) == "" {
		return "", validationError("Recipe and servings are required.")
	}

	req := llm.Request{
		System: servingsSystemPrompt,
		Sections: []string{
			fmt.Sprintf("Adjust this recipe to serve %s people. Do not rewrite the title, just adjust the ingredient amounts and instructions accordingly:\n\n%s", strings.TrimSpace(servings), recipe),
		},
	}
	return s.generate(ctx, s.chat, req, "Failed to update the recipe.")
}

func (s *GenerationService) generate(ctx context.Context, g llm.Generator, req llm.Request, failure string) (string, error) {
	text, err := g.GenerateText(ctx, req)
	if err != nil {
		s.logger.Error("generation failed", zap.Error(err))
		return "", generationError(failure, err)
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Error("generation returned no content")
		return "", generationError(failure, llm.ErrEmptyResponse)
	}
	return text, nil
}

func allergyNotice(allergies []string) string {
	allergies = cleanList(allergies)
	if len(allergies) == 0 {
		return ""
	}
	return fmt.Sprintf("Avoid using these allergens: %s.", strings.Join(allergies, ", "))
}

func substituteAllergyNotice(allergies []string) string {
	allergies = cleanList(allergies)
	if len(allergies) == 0 {
		return ""
	}
	return fmt.Sprintf("The substitute should not include these allergens: %s.", strings.Join(allergies, ", "))
}

func alreadyUsedNotice(used []string) string {
	used = cleanList(used)
	if len(used) == 0 {
		return ""
	}
	return fmt.Sprintf("The substitute should not be one of the following: %s.", strings.Join(used, ", "))
}

func servingsNotice(servings string) string {
	servings = strings.TrimSpace(servings)
	if servings == "" {
		return ""
	}
	return fmt.Sprintf("The recipe should be enough for %s people.", servings)
}
