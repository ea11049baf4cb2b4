// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"fmt"
	stdlog "log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"blogapi/auth"
	authHandlers "blogapi/auth/handlers"
	authRepository "blogapi/auth/repository"
	authServices "blogapi/auth/services"
	"blogapi/blogs"
	blogHandlers "blogapi/blogs/handlers"
	blogsRepository "blogapi/blogs/repository"
	blogServices "blogapi/blogs/services"
	"blogapi/comments"
	commentHandlers "blogapi/comments/handlers"
	commentsRepository "blogapi/comments/repository"
	commentServices "blogapi/comments/services"
	"blogapi/internal/cache"
	"blogapi/internal/database/postgres"
	"blogapi/internal/pkg/log"
	platformconfig "blogapi/internal/platform/config"
	"blogapi/votes"
	votesHandlers "blogapi/votes/handlers"
	votesRepository "blogapi/votes/repository"
	votesServices "blogapi/votes/services"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		stdlog.Fatalf("Failed to load platform config: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			// Handlers write their own error bodies; don't override them
			if len(c.Response().Body()) > 0 {
				return nil
			}

			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		stdlog.Fatalf("Failed to create postgres client: %v", err)
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		stdlog.Fatalf("Failed to ensure database schema: %v", err)
	}

	cacheService := cache.NewService(cfg.Cache)
	defer cacheService.Close()

	// Repositories
	blogRepo := blogsRepository.NewPostgresBlogRepository(pgClient)
	voteRepo := votesRepository.NewPostgresVoteRepository(pgClient)
	commentRepo := commentsRepository.NewPostgresCommentRepository(pgClient)
	userRepo := authRepository.NewPostgresUserRepository(pgClient)

	// Services
	commentService := commentServices.NewCommentService(commentRepo, blogRepo, cacheService, cfg)
	blogService := blogServices.NewBlogService(blogRepo, voteRepo, commentService, cacheService, cfg)
	voteService := votesServices.NewVoteService(voteRepo, blogRepo, cacheService)
	authService := authServices.NewAuthService(userRepo, cfg)

	// Routes
	blogs.RegisterRoutes(app, &blogs.BlogsHandlers{
		BlogHandler: blogHandlers.NewBlogHandler(blogService),
	}, cfg)
	votes.RegisterRoutes(app, &votes.VotesHandlers{
		VoteHandler: votesHandlers.NewVoteHandler(voteService),
	}, cfg)
	comments.RegisterRoutes(app, &comments.CommentsHandlers{
		CommentHandler: commentHandlers.NewCommentHandler(commentService),
	}, cfg)
	auth.RegisterRoutes(app, &auth.AuthHandlers{
		AuthHandler: authHandlers.NewAuthHandler(authService),
	}, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("%s listening on %s", cfg.App.Name, addr)
	if err := app.Listen(addr); err != nil {
		stdlog.Fatalf("Server stopped: %v", err)
	}
}
