package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrychef/backend/internal/api"
	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/models"
)

// Handlers groups everything the route table needs
type Handlers struct {
	Auth       *api.AuthHandler
	Recipes    *api.RecipeHandler
	Generation *api.GenerationHandler
	Users      *api.UserHandler
	Kitchen    *api.KitchenHandler
	Health     gin.HandlerFunc
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, validator middleware.TokenValidator, corsOrigins []string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", middleware.AuthMiddleware(validator), h.Auth.Logout)
	}

	recipes := v1.Group("/recipes")
	{
		recipes.POST("/save", h.Recipes.SaveRecipe)
		recipes.PATCH("/:id/remove-user", h.Recipes.RemoveUser)
		recipes.DELETE("/:id/remove-user", h.Recipes.RemoveUser)
		recipes.GET("/:id", h.Recipes.GetRecipe)
		recipes.POST("/generate", h.Generation.GenerateRecipe)
		recipes.POST("/substitute", h.Generation.Substitute)
		recipes.POST("/updateServings", h.Generation.UpdateServings)
	}
	v1.POST("/new-recipes/generate", h.Generation.GenerateNamedRecipe)
	v1.POST("/substitutes/generate", h.Generation.Substitutes)

	// Account creation stays public; everything else needs a token.
	v1.POST("/users", h.Users.CreateUser)

	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(validator))
	{
		users.GET("", middleware.RequireSelfOrRole(models.AdminRole), h.Users.ListUsers)

		self := users.Group("/:id")
		self.Use(middleware.RequireSelfOrRole(models.AdminRole))
		{
			self.GET("", h.Users.GetUser)
			self.PATCH("", h.Users.UpdateUser)
			self.DELETE("", h.Users.DeleteUser)
			self.GET("/recipes", h.Users.ListSavedRecipes)

			self.GET("/kitchen", h.Kitchen.ListIngredients)
			self.POST("/kitchen", h.Kitchen.AddIngredient)
			self.PATCH("/kitchen/:ingredientId", h.Kitchen.UpdateIngredient)
			self.DELETE("/kitchen/:ingredientId", h.Kitchen.RemoveIngredient)
		}
	}

	return router
}
