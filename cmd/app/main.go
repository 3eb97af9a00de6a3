package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"bizlens/cmd/fx/account_fx"
	"bizlens/cmd/fx/admin_fx"
	"bizlens/cmd/fx/business_fx"
	"bizlens/cmd/fx/config_fx"
	"bizlens/cmd/fx/content_fx"
	"bizlens/cmd/fx/controllers_fx"
	"bizlens/cmd/fx/dashboard"
	"bizlens/cmd/fx/db_fx"
	"bizlens/cmd/fx/favorite_fx"
	"bizlens/cmd/fx/genai_fx"
	"bizlens/cmd/fx/jobs_fx"
	"bizlens/cmd/fx/mail_fx"
	"bizlens/cmd/fx/memcache_fx"
	"bizlens/cmd/fx/offering_fx"
	"bizlens/cmd/fx/review_fx"
	"bizlens/cmd/fx/search_fx"
	"bizlens/cmd/fx/taxonomy_fx"
	"bizlens/internal/api/controllers"
	"bizlens/internal/config"
	"bizlens/internal/services"
	"bizlens/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,

		account_fx.Module,
		business_fx.Module,
		offering_fx.Module,
		review_fx.Module,
		search_fx.Module,
		genai_fx.Module,
		favorite_fx.Module,
		taxonomy_fx.Module,
		content_fx.Module,
		admin_fx.Module,
		dashboard.Module,
		jobs_fx.Module,

		controllers_fx.Module,
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server on :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	businessController *controllers.BusinessController,
	offeringController *controllers.OfferingController,
	reviewController *controllers.ReviewController,
	favoriteController *controllers.FavoriteController,
	searchController *controllers.SearchController,
	taxonomyController *controllers.TaxonomyController,
	contentController *controllers.ContentController,
	adminController *controllers.AdminController,
	dashboardController *controllers.DashboardController,
	rateLimiter services.RateLimitServiceInterface) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r,
		accountController,
		businessController,
		offeringController,
		reviewController,
		favoriteController,
		searchController,
		taxonomyController,
		contentController,
		adminController,
		dashboardController,
		rateLimiter)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	businessController *controllers.BusinessController,
	offeringController *controllers.OfferingController,
	reviewController *controllers.ReviewController,
	favoriteController *controllers.FavoriteController,
	searchController *controllers.SearchController,
	taxonomyController *controllers.TaxonomyController,
	contentController *controllers.ContentController,
	adminController *controllers.AdminController,
	dashboardController *controllers.DashboardController,
	rateLimiter services.RateLimitServiceInterface) {

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", accountController.Register)
	accountGroup.POST("/login", accountController.Login)
	accountGroup.POST("/forgot-password", accountController.ForgotPassword)
	accountGroup.POST("/reset-password", accountController.ResetPassword)

	meGroup := r.Group("/accounts", middleware.JWTAuthMiddleware())
	meGroup.GET("/me", accountController.GetMe)
	meGroup.PUT("/me", accountController.UpdateMe)
	meGroup.GET("/me/credits", accountController.GetCreditHistory)

	businessGroup := r.Group("/businesses")
	businessGroup.GET("", businessController.ListBusinesses)
	businessGroup.GET("/nearby", businessController.GetNearbyBusinesses)
	businessGroup.GET("/slug/:slug", businessController.GetBusinessBySlug)
	businessGroup.GET("/:businessId", businessController.GetBusinessById)
	businessGroup.GET("/:businessId/offerings", offeringController.ListByBusiness)
	businessGroup.GET("/:businessId/reviews", reviewController.ListBusinessReviews)

	r.GET("/offerings/:id", offeringController.GetOfferingById)

	r.GET("/categories", taxonomyController.ListCategories)
	r.GET("/cities", taxonomyController.ListCities)
	r.GET("/tags", taxonomyController.ListTags)

	reviewGroup := r.Group("/reviews")
	reviewGroup.POST("", middleware.JWTAuthMiddleware(),
		middleware.RateLimitMiddleware(rateLimiter, "submit-review"),
		reviewController.SubmitReview)
	reviewGroup.POST("/:id/view", reviewController.RegisterView)

	favoriteGroup := r.Group("/favorites", middleware.JWTAuthMiddleware())
	favoriteGroup.GET("", favoriteController.ListFavorites)
	favoriteGroup.POST("/:businessId", favoriteController.AddFavorite)
	favoriteGroup.DELETE("/:businessId", favoriteController.RemoveFavorite)

	// Public but throttled; the optional JWT lets the limiter key on the
	// account instead of the client IP when a token is present.
	r.POST("/search/semantic",
		middleware.OptionalJWTMiddleware(),
		middleware.RateLimitMiddleware(rateLimiter, "semantic-search"),
		searchController.SemanticSearch)

	r.GET("/content/articles", contentController.ListArticles)
	r.POST("/newsletter/subscribe",
		middleware.OptionalJWTMiddleware(),
		middleware.RateLimitMiddleware(rateLimiter, "newsletter-subscribe"),
		contentController.Subscribe)

	adminGroup := r.Group("/admin", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	adminGroup.GET("/accounts", accountController.GetAllAccounts)

	adminGroup.POST("/businesses", businessController.CreateBusiness)
	adminGroup.PUT("/businesses", businessController.UpdateBusiness)
	adminGroup.POST("/businesses/verify", businessController.SetVerified)
	adminGroup.POST("/businesses/visibility", businessController.SetVisible)

	adminGroup.POST("/offerings", offeringController.CreateOffering)
	adminGroup.PUT("/offerings", offeringController.UpdateOffering)
	adminGroup.POST("/offerings/images", offeringController.AddImage)
	adminGroup.POST("/offerings/images/primary", offeringController.SetPrimaryImage)
	adminGroup.POST("/offerings/images/:id/approve", offeringController.ApproveImage)
	adminGroup.DELETE("/offerings/images/:id", offeringController.DeleteImage)
	adminGroup.POST("/offerings/:id/generate-description", offeringController.GenerateDescription)

	adminGroup.GET("/reviews/pending", reviewController.ModerationQueue)
	adminGroup.POST("/reviews/moderate", reviewController.ModerateReview)

	adminGroup.GET("/settings", adminController.ListSettings)
	adminGroup.GET("/settings/:key", adminController.GetSetting)
	adminGroup.PUT("/settings/:key", adminController.UpdateSetting)

	adminGroup.POST("/refresh",
		middleware.RateLimitMiddleware(rateLimiter, "refresh-trigger"),
		adminController.TriggerRefresh)
	adminGroup.POST("/gmb/discover", adminController.DiscoverGMB)
	adminGroup.POST("/content/sync", contentController.SyncContent)

	adminGroup.GET("/dashboard", dashboardController.GetDashboard)
}
