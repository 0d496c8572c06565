package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "cms/api/v1"
	"cms/config"
	"cms/dao"
	"cms/internal/apperr"
	myvalidator "cms/internal/validator"
	"cms/middleware"
	"cms/model"
	"cms/service"
)

func main() {
	// 初始化配置
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	config.InitConfig(configPath)
	config.InitRedis()

	// 初始化数据库
	db, err := gorm.Open(mysql.Open(config.GlobalConfig.MySQL.DSN), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// 自动迁移
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.Post{},
		&model.Comment{},
		&model.Media{},
	); err != nil {
		panic(err)
	}

	// 初始化 DAO 和 Service
	userDAO := dao.NewUserDAO(db)
	postDAO := dao.NewPostDAO(db)
	taxonomyDAO := dao.NewTaxonomyDAO(db)
	commentDAO := dao.NewCommentDAO(db)
	mediaDAO := dao.NewMediaDAO(db)

	userService := service.NewUserService(userDAO, config.RedisClient)
	postService := service.NewPostService(postDAO, taxonomyDAO)
	taxonomyService := service.NewTaxonomyService(taxonomyDAO, postDAO)
	commentService := service.NewCommentService(commentDAO, postDAO)
	mediaService := service.NewMediaService(mediaDAO)
	statsService := service.NewStatsService(postDAO, userDAO, taxonomyDAO, commentDAO)

	seedAdmin(userService)

	userAPI := v1.NewUserAPI(userService)
	postAPI := v1.NewPostAPI(postService)
	taxonomyAPI := v1.NewTaxonomyAPI(taxonomyService)
	commentAPI := v1.NewCommentAPI(commentService)
	mediaAPI := v1.NewMediaAPI(mediaService)
	statsAPI := v1.NewStatsAPI(statsService)

	// 初始化路由
	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("slug", myvalidator.IsSlug); err != nil {
			panic(err)
		}
	}

	// 公共路由
	public := r.Group("/api/v1")
	{
		public.POST("/users/register", userAPI.Register)
		loginLimiter := middleware.LoginRateLimiter(config.RedisClient, 5, time.Minute)
		public.POST("/users/login", loginLimiter, userAPI.Login)
		public.POST("/users/refresh", userAPI.RefreshToken)

		public.GET("/posts", postAPI.ListPublished)
		public.GET("/posts/:id", postAPI.View)
		public.GET("/categories", taxonomyAPI.ListCategories)
		public.GET("/tags", taxonomyAPI.ListTags)
	}

	// 私有路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(userService.Session, userService))
	{
		private.POST("/users/logout", userAPI.Logout)
		private.GET("/users", middleware.RequireRoles(model.RoleAdmin), userAPI.List)

		private.POST("/posts", postAPI.Create)
		private.PUT("/posts/:id", postAPI.Update)
		private.DELETE("/posts/:id", postAPI.Delete)
		private.GET("/dashboard/posts", postAPI.ListAll)

		private.POST("/categories", taxonomyAPI.CreateCategory)
		private.DELETE("/categories/:id", taxonomyAPI.DeleteCategory)
		private.POST("/tags", taxonomyAPI.CreateTag)
		private.DELETE("/tags/:id", taxonomyAPI.DeleteTag)

		private.POST("/posts/:id/comments", commentAPI.Submit)
		private.GET("/posts/:id/comments", commentAPI.ListForPost)
		private.PUT("/comments/:id/status", commentAPI.Moderate)

		private.POST("/media", mediaAPI.Upload)
		private.GET("/media", mediaAPI.List)
		private.DELETE("/media/:id", mediaAPI.Delete)

		private.GET("/stats", statsAPI.Stats)
	}

	// 启动服务
	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedAdmin 确保默认管理员存在（密码可通过 ADMIN_PASSWORD 覆盖）
func seedAdmin(users *service.UserService) {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	_, err := users.Register(service.RegisterInput{
		Username: "admin",
		Email:    "admin@cms.com",
		Password: password,
		FullName: "Administrator",
		Role:     model.RoleAdmin,
	})
	switch {
	case err == nil:
		log.Println("Default admin user created: username='admin'")
	case apperr.Is(err, apperr.KindDuplicate):
		// 已存在，无需处理
	default:
		log.Fatalf("Seed admin failed: %v", err)
	}
}
