package services

import (
	"time"

	"cvmatch/internal/app/deps"
	drl "cvmatch/internal/core/domain/rate_limiter"
	"cvmatch/internal/core/services"
	analyzecv "cvmatch/internal/core/services/analyze_cv"
	applytojob "cvmatch/internal/core/services/apply_to_job"
	"cvmatch/internal/core/services/auth"
	changepassword "cvmatch/internal/core/services/change_password"
	createjob "cvmatch/internal/core/services/create_job"
	getcv "cvmatch/internal/core/services/get_cv"
	getuserbysessiontoken "cvmatch/internal/core/services/get_user_by_session_token"
	listapplications "cvmatch/internal/core/services/list_applications"
	listcvmatches "cvmatch/internal/core/services/list_cv_matches"
	listjobs "cvmatch/internal/core/services/list_jobs"
	listsavedjobs "cvmatch/internal/core/services/list_saved_jobs"
	listusercvs "cvmatch/internal/core/services/list_user_cvs"
	loginwithemail "cvmatch/internal/core/services/log_in_with_email"
	logout "cvmatch/internal/core/services/log_out"
	ratelimiting "cvmatch/internal/core/services/rate_limiting"
	resetpassword "cvmatch/internal/core/services/reset_password"
	savejob "cvmatch/internal/core/services/save_job"
	sendpasswordresettoken "cvmatch/internal/core/services/send_password_reset_token"
	signupwithemail "cvmatch/internal/core/services/sign_up_with_email"
	unsavejob "cvmatch/internal/core/services/unsave_job"
	updateapplication "cvmatch/internal/core/services/update_application"
	uploadcv "cvmatch/internal/core/services/upload_cv"
	withdrawapplication "cvmatch/internal/core/services/withdraw_application"
)

type Services struct {
	SignUpWithEmail        services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                 services.Service[logout.Input, logout.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	ChangePassword         services.Service[changepassword.Input, changepassword.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]

	UploadCV      services.Service[uploadcv.Input, uploadcv.Result]
	ListUserCVs   services.Service[listusercvs.Input, listusercvs.Result]
	GetCV         services.Service[getcv.Input, getcv.Result]
	ListCVMatches services.Service[listcvmatches.Input, listcvmatches.Result]
	AnalyzeCV     services.Service[analyzecv.Input, analyzecv.Result]

	CreateJob     services.Service[createjob.Input, createjob.Result]
	ListJobs      services.Service[listjobs.Input, listjobs.Result]
	SaveJob       services.Service[savejob.Input, savejob.Result]
	UnsaveJob     services.Service[unsavejob.Input, unsavejob.Result]
	ListSavedJobs services.Service[listsavedjobs.Input, listsavedjobs.Result]

	ApplyToJob          services.Service[applytojob.Input, applytojob.Result]
	ListApplications    services.Service[listapplications.Input, listapplications.Result]
	UpdateApplication   services.Service[updateapplication.Input, updateapplication.Result]
	WithdrawApplication services.Service[withdrawapplication.Input, withdrawapplication.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.SessionRepository,
		deps.PasswordHasher,
		deps.SessionTokenGenerator,
		deps.Now,
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Minute, Value: 3},
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.UnitOfWork,
			deps.ResetTokenGenerator,
			deps.ResetTokenHasher,
			deps.EmailSender,
			time.Duration(deps.Config.PasswordResetValidDurationMinutes)*time.Minute,
			deps.Now,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.ResetTokenRepository,
		deps.ResetTokenHasher,
		deps.PasswordHasher,
		deps.SessionTokenGenerator,
		deps.UnitOfWork,
		deps.Now,
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
		),
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)

	s.UploadCV = auth.WithAuthentication(
		deps.SessionRepository,
		uploadcv.New(
			deps.Logger,
			deps.CVRepository,
			deps.FileStorage,
			deps.FileKeyGenerator,
			deps.AnalysisScheduler,
			deps.Now,
		),
	)
	s.ListUserCVs = auth.WithAuthentication(
		deps.SessionRepository,
		listusercvs.New(deps.Logger, deps.CVRepository),
	)
	s.GetCV = auth.WithAuthentication(
		deps.SessionRepository,
		getcv.New(deps.Logger, deps.CVRepository),
	)
	s.ListCVMatches = auth.WithAuthentication(
		deps.SessionRepository,
		listcvmatches.New(deps.Logger, deps.CVRepository, deps.MatchRepository),
	)
	s.AnalyzeCV = analyzecv.New(
		deps.Logger,
		deps.CVRepository,
		deps.JobRepository,
		deps.MatchRepository,
		deps.FileStorage,
		deps.TextExtractor,
		deps.ProfileAnalyzer,
		deps.AnalyzedEventPublisher,
		deps.Now,
	)

	s.CreateJob = auth.WithAuthentication(
		deps.SessionRepository,
		createjob.New(deps.Logger, deps.JobRepository, deps.Now),
	)
	s.ListJobs = listjobs.New(deps.Logger, deps.JobRepository)
	s.SaveJob = auth.WithAuthentication(
		deps.SessionRepository,
		savejob.New(deps.Logger, deps.JobRepository, deps.SavedJobRepository, deps.Now),
	)
	s.UnsaveJob = auth.WithAuthentication(
		deps.SessionRepository,
		unsavejob.New(deps.Logger, deps.SavedJobRepository),
	)
	s.ListSavedJobs = auth.WithAuthentication(
		deps.SessionRepository,
		listsavedjobs.New(deps.Logger, deps.SavedJobRepository),
	)

	s.ApplyToJob = auth.WithAuthentication(
		deps.SessionRepository,
		applytojob.New(deps.Logger, deps.JobRepository, deps.ApplicationRepository, deps.Now),
	)
	s.ListApplications = auth.WithAuthentication(
		deps.SessionRepository,
		listapplications.New(deps.Logger, deps.ApplicationRepository),
	)
	s.UpdateApplication = auth.WithAuthentication(
		deps.SessionRepository,
		updateapplication.New(deps.Logger, deps.ApplicationRepository, deps.Now),
	)
	s.WithdrawApplication = auth.WithAuthentication(
		deps.SessionRepository,
		withdrawapplication.New(deps.Logger, deps.ApplicationRepository),
	)

	return s
}
