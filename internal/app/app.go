package app

import (
	"fmt"
	"net/http"

	"cvmatch/internal/app/deps"
	"cvmatch/internal/app/services"
	applytojob "cvmatch/internal/http/handlers/applications/apply_to_job"
	listapplications "cvmatch/internal/http/handlers/applications/list_applications"
	updateapplication "cvmatch/internal/http/handlers/applications/update_application"
	withdrawapplication "cvmatch/internal/http/handlers/applications/withdraw_application"
	"cvmatch/internal/http/handlers/auth"
	changepassword "cvmatch/internal/http/handlers/auth/change_password"
	loginwithemail "cvmatch/internal/http/handlers/auth/log_in_with_email"
	logout "cvmatch/internal/http/handlers/auth/log_out"
	me "cvmatch/internal/http/handlers/auth/me"
	resetpassword "cvmatch/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "cvmatch/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "cvmatch/internal/http/handlers/auth/sign_up_with_email"
	"cvmatch/internal/http/handlers/cvs/events"
	getcv "cvmatch/internal/http/handlers/cvs/get_cv"
	listcvmatches "cvmatch/internal/http/handlers/cvs/list_cv_matches"
	listusercvs "cvmatch/internal/http/handlers/cvs/list_user_cvs"
	uploadcv "cvmatch/internal/http/handlers/cvs/upload_cv"
	createjob "cvmatch/internal/http/handlers/jobs/create_job"
	listjobs "cvmatch/internal/http/handlers/jobs/list_jobs"
	listsavedjobs "cvmatch/internal/http/handlers/jobs/list_saved_jobs"
	savejob "cvmatch/internal/http/handlers/jobs/save_job"
	unsavejob "cvmatch/internal/http/handlers/jobs/unsave_job"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(
		http.MethodPost,
		"/forgot-password",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	authRouter.Method(http.MethodPost, "/reset-password", resetpassword.New(s.ResetPassword))

	authRouter.Group(func(r chi.Router) {
		r.Use(auth.SetAuthTokenToContext)
		r.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
		r.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	})

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodPut, "/password", changepassword.New(s.ChangePassword))

	cvsRouter := chi.NewRouter()
	cvsRouter.Use(auth.SetAuthTokenToContext)
	cvsRouter.Method(http.MethodPost, "/", uploadcv.New(s.UploadCV))
	cvsRouter.Method(http.MethodGet, "/", listusercvs.New(s.ListUserCVs))
	cvsRouter.Method(http.MethodGet, "/events", events.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken))
	cvsRouter.Method(http.MethodGet, "/{cvID:[0-9]+}", getcv.New(s.GetCV))
	cvsRouter.Method(http.MethodGet, "/{cvID:[0-9]+}/matches", listcvmatches.New(s.ListCVMatches))

	jobsRouter := chi.NewRouter()
	jobsRouter.Method(http.MethodGet, "/", listjobs.New(s.ListJobs))
	jobsRouter.Group(func(r chi.Router) {
		r.Use(auth.SetAuthTokenToContext)
		r.Method(http.MethodPost, "/", createjob.New(s.CreateJob))
		r.Method(http.MethodGet, "/saved", listsavedjobs.New(s.ListSavedJobs))
		r.Method(http.MethodPost, "/{jobID:[0-9]+}/save", savejob.New(s.SaveJob))
		r.Method(http.MethodDelete, "/{jobID:[0-9]+}/save", unsavejob.New(s.UnsaveJob))
		r.Method(http.MethodPost, "/{jobID:[0-9]+}/applications", applytojob.New(s.ApplyToJob))
	})

	applicationsRouter := chi.NewRouter()
	applicationsRouter.Use(auth.SetAuthTokenToContext)
	applicationsRouter.Method(http.MethodGet, "/", listapplications.New(s.ListApplications))
	applicationsRouter.Method(
		http.MethodPatch,
		"/{applicationID:[0-9]+}",
		updateapplication.New(s.UpdateApplication),
	)
	applicationsRouter.Method(
		http.MethodDelete,
		"/{applicationID:[0-9]+}",
		withdrawapplication.New(s.WithdrawApplication),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Mount("/cvs", cvsRouter)
	router.Mount("/jobs", jobsRouter)
	router.Mount("/applications", applicationsRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
