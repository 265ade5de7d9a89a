package handlers

import (
	"net/http"

	"blog-api/helper"
	"blog-api/metrics"
	"blog-api/middleware"
	"blog-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services groups what the router needs from the service layer.
type Services struct {
	Users      services.UserService
	Posts      services.PostService
	Comments   services.CommentService
	Tags       services.TagService
	Statistics services.StatisticsService
}

type RouterConfig struct {
	Helper      *helper.HTTPHelper
	Logger      logrus.FieldLogger
	CorsOrigins []string
}

func NewRouter(svc Services, cfg RouterConfig) *gin.Engine {
	userHandler := NewUserHandler(svc.Users, svc.Posts, cfg.Helper)
	postHandler := NewPostHandler(svc.Posts, svc.Comments, cfg.Helper)
	commentHandler := NewCommentHandler(svc.Comments, cfg.Helper)
	tagHandler := NewTagHandler(svc.Tags, svc.Posts, cfg.Helper)
	statisticsHandler := NewStatisticsHandler(svc.Statistics, cfg.Helper)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.Metrics(),
		middleware.CORS(cfg.CorsOrigins),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Blog API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"users":      "/api/v1/users",
				"posts":      "/api/v1/posts",
				"comments":   "/api/v1/comments",
				"tags":       "/api/v1/tags",
				"search":     "/api/v1/search",
				"statistics": "/api/v1/statistics",
			},
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "blog-api"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/posts", userHandler.GetUserPosts)
		}

		tags := v1.Group("/tags")
		{
			tags.POST("", tagHandler.CreateTag)
			tags.GET("", tagHandler.GetTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
			tags.GET("/:id/posts", tagHandler.GetTagPosts)
		}

		posts := v1.Group("/posts")
		{
			posts.POST("", postHandler.CreatePost)
			posts.GET("", postHandler.GetPosts)
			posts.GET("/:id", postHandler.GetPost)
			posts.PUT("/:id", postHandler.UpdatePost)
			posts.DELETE("/:id", postHandler.DeletePost)
			posts.POST("/:id/publish", postHandler.PublishPost)
			posts.POST("/:id/unpublish", postHandler.UnpublishPost)
			posts.POST("/:id/reset-views", postHandler.ResetViews)
			posts.GET("/:id/comments", postHandler.GetPostComments)
			posts.POST("/:id/tags/:tag_id", postHandler.AddTag)
			posts.DELETE("/:id/tags/:tag_id", postHandler.RemoveTag)
		}

		comments := v1.Group("/comments")
		{
			comments.POST("", commentHandler.CreateComment)
			comments.GET("", commentHandler.GetComments)
			comments.GET("/:id", commentHandler.GetComment)
			comments.PUT("/:id", commentHandler.UpdateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}

		v1.GET("/search", postHandler.SearchPosts)

		statistics := v1.Group("/statistics")
		{
			statistics.GET("", statisticsHandler.GetStatistics)
			statistics.GET("/most-viewed", statisticsHandler.GetMostViewed)
			statistics.GET("/most-commented", statisticsHandler.GetMostCommented)
		}
	}

	return router
}
