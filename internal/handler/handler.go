package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/availability"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/config"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/repository"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	mailChannel  *amqp.Channel
	redisClient  *redis.Client
	availability *availability.Validator
	location     *time.Location

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	availabilityValidator, err := availability.NewValidator(
		availability.SystemClock(),
		cfg.Office.Timezone,
		cfg.Office.OpenTime,
		cfg.Office.CloseTime,
		cfg.Availability.MaxWeeklyMinutes,
		cfg.Availability.MinWeeklyMinutes,
		cfg.Availability.MinDistinctDays,
	)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		mailChannel:  mailCh,
		redisClient:  rdb,
		availability: availabilityValidator,
		location:     availabilityValidator.Location(),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/register", h.Register)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/spa-services", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateSpaService)
			r.Get("/", h.GetAllSpaServices)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.spaService)
				r.Get("/", h.GetSpaService)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateSpaService)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteSpaService)
			})
		})

		// 每周排班时间的提交只对学生兼职理疗师开放
		r.Route("/availability/{weekStart}", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleStaff}))
			r.Use(h.myInfo)
			r.Use(h.preventInactiveStaff)
			r.Use(h.studentStaffOnly)
			r.Use(h.weekOfInterest)
			r.Post("/", h.SubmitWeeklyAvailability)
			r.Get("/", h.GetMyWeeklyAvailability)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.With(h.weekOfInterest).Get("/pending/{weekStart}", h.GetPendingSchedules)
			r.Route("/{staffID}/{weekStart}", func(r chi.Router) {
				r.Use(h.staffInfo)
				r.Use(h.weekOfInterest)
				r.Get("/", h.GetStaffWeeklySchedule)
				r.Post("/", h.CreateApprovedSchedule)
				r.Post("/approve", h.ApproveStaffWeek)
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleCustomer})).With(h.myInfo).Post("/", h.CreateBooking)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/", h.GetAllBookings)
			r.With(h.myInfo).Get("/my", h.GetMyBookings)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.bookingInfo)
				r.With(h.myInfo).Post("/cancel", h.CancelBooking)
			})
		})
	})
}
