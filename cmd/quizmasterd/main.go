package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	api "github.com/quizmaster/quizmaster/internal/api/http"
	"github.com/quizmaster/quizmaster/internal/attempt"
	auth "github.com/quizmaster/quizmaster/internal/auth/middleware"
	"github.com/quizmaster/quizmaster/internal/config"
	"github.com/quizmaster/quizmaster/internal/db"
	"github.com/quizmaster/quizmaster/internal/grading"
	"github.com/quizmaster/quizmaster/internal/quiz"
	rbac "github.com/quizmaster/quizmaster/internal/rbac"
	"github.com/quizmaster/quizmaster/internal/score"
	"github.com/quizmaster/quizmaster/internal/syncx"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := auth.EnsureAdmin(ctx, dbh); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	quizzes := quiz.NewSQLStore(dbh)
	scores := score.NewSQLStore(dbh)
	engine := grading.NewEngine(quizzes, scores)
	events := syncx.NewEventRepo(dbh)

	// Saved-attempt snapshots live on disk, one directory per user.
	snapshots := func(userID int64) (attempt.SnapshotStore, error) {
		return attempt.NewFSSnapshots(filepath.Join(cfg.SnapshotBasePath, strconv.FormatInt(userID, 10)))
	}

	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public surface: signup, login, catalog browsing.
	r.Post("/auth/register", auth.RegisterHandler(dbh))
	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	r.Get("/subjects", api.ListSubjectsHandler(quizzes))
	r.Get("/subjects/{subjectID}", api.GetSubjectHandler(quizzes))
	r.Get("/chapters", api.ListChaptersHandler(quizzes))
	r.Get("/chapters/subject/{subjectID}", api.ListChaptersBySubjectHandler(quizzes))
	r.Get("/chapters/{chapterID}", api.GetChapterHandler(quizzes))
	r.Get("/quizzes", api.ListQuizzesHandler(quizzes))
	r.Get("/quizzes/chapter/{chapterID}", api.ListQuizzesByChapterHandler(quizzes))
	r.Get("/quizzes/{quizID}", api.GetQuizHandler(quizzes))

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc, dbh))

		// Catalog management (admin)
		pr.With(rbac.Require("subject:create")).
			Post("/subjects", api.CreateSubjectHandler(quizzes))
		pr.With(rbac.Require("subject:update")).
			Put("/subjects/{subjectID}", api.UpdateSubjectHandler(quizzes))
		pr.With(rbac.Require("subject:delete")).
			Delete("/subjects/{subjectID}", api.DeleteSubjectHandler(quizzes))

		pr.With(rbac.Require("chapter:create")).
			Post("/chapters", api.CreateChapterHandler(quizzes))
		pr.With(rbac.Require("chapter:update")).
			Put("/chapters/{chapterID}", api.UpdateChapterHandler(quizzes))
		pr.With(rbac.Require("chapter:delete")).
			Delete("/chapters/{chapterID}", api.DeleteChapterHandler(quizzes))

		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", api.CreateQuizHandler(quizzes))
		pr.With(rbac.Require("quiz:update")).
			Put("/quizzes/{quizID}", api.UpdateQuizHandler(quizzes))
		pr.With(rbac.Require("quiz:delete")).
			Delete("/quizzes/{quizID}", api.DeleteQuizHandler(quizzes))

		pr.With(rbac.Require("question:create")).
			Post("/questions", api.CreateQuestionHandler(quizzes))
		pr.With(rbac.Require("question:view-all")).
			Get("/questions/quiz/{quizID}", api.ListQuestionsByQuizHandler(quizzes))
		pr.With(rbac.Require("question:view-safe")).
			Get("/questions/quiz/{quizID}/user", api.ListQuestionsForUserHandler(quizzes))
		pr.With(rbac.Require("question:view-all")).
			Get("/questions/{questionID}", api.GetQuestionHandler(quizzes))
		pr.With(rbac.Require("question:update")).
			Put("/questions/{questionID}", api.UpdateQuestionHandler(quizzes))
		pr.With(rbac.Require("question:delete")).
			Delete("/questions/{questionID}", api.DeleteQuestionHandler(quizzes))

		// Attempt flow
		pr.With(rbac.Require("attempt:save")).
			Put("/attempts/{quizID}/answers", api.SaveAttemptHandler(snapshots))
		pr.With(rbac.Require("attempt:save")).
			Get("/attempts/{quizID}/answers", api.GetAttemptHandler(snapshots))
		pr.With(rbac.Require("attempt:save")).
			Delete("/attempts/{quizID}/answers", api.DeleteAttemptHandler(snapshots))

		pr.With(rbac.Require("score:submit")).
			Post("/scores/submit", api.SubmitQuizHandler(engine, events))
		pr.With(rbac.RequireAny("score:view-own", "score:view-all")).
			Get("/scores/user", api.UserScoresHandler(scores))
		pr.With(rbac.RequireAny("score:view-own", "score:view-all")).
			Get("/scores/user/stats", api.UserStatsHandler(scores))
		pr.With(rbac.Require("score:view-all")).
			Get("/scores/quiz/{quizID}", api.ScoresByQuizHandler(scores))
		pr.With(rbac.Require("score:view-all")).
			Get("/scores", api.AllScoresHandler(scores))

		// Users
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:profile")).
			Get("/users/profile", api.ProfileHandler(dbh))
		pr.With(rbac.Require("user:profile")).
			Put("/users/profile", api.UpdateProfileHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
		pr.With(rbac.Require("users:delete")).
			Delete("/users/{userID}", api.DeleteUserHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("quizmasterd listening on %s (mode=%s, driver=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
