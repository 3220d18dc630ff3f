package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/config"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

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

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

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
			r.Route("/availabilities", func(r chi.Router) {
				r.Use(h.preventInactiveEmployee)
				r.Post("/", h.CreateMyAvailability)
				r.Get("/", h.GetMyAvailabilities)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.myAvailability)
					r.Patch("/", h.UpdateMyAvailability)
					r.Delete("/", h.DeleteMyAvailability)
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateUser)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Get("/availabilities", h.GetUserAvailabilities)
			})
		})

		r.Route("/companies", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateCompany)
			r.Get("/", h.GetAllCompanies)
			r.Route("/{companyID}", func(r chi.Router) {
				r.Use(h.company)
				r.Get("/", h.GetCompany)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateCompany)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteCompany)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/locations", h.CreateLocation)
				r.Get("/locations", h.GetCompanyLocations)
				r.Route("/blackout-days", func(r chi.Router) {
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateBlackoutDay)
					r.Get("/", h.GetCompanyBlackoutDays)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Delete("/{id}", h.DeleteBlackoutDay)
				})
			})
		})

		r.Route("/locations/{locationID}", func(r chi.Router) {
			r.Use(h.location)
			r.Get("/", h.GetLocation)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateLocation)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteLocation)

			r.Route("/shift-templates", func(r chi.Router) {
				r.With(h.requireLocationManagement).Post("/", h.CreateShiftTemplate)
				r.Get("/", h.GetLocationShiftTemplates)
			})

			r.Route("/special-opening-hours", func(r chi.Router) {
				r.With(h.requireLocationManagement).Post("/", h.CreateSpecialOpeningHours)
				r.Get("/", h.GetLocationSpecialOpeningHours)
				r.With(h.requireLocationManagement).Delete("/{id}", h.DeleteSpecialOpeningHours)
			})

			r.Route("/shift-instances", func(r chi.Router) {
				r.With(h.requireLocationManagement).Post("/generate", h.GenerateShiftInstances)
				r.With(h.requireLocationManagement).Post("/", h.CreateManualShiftInstance)
				r.Get("/", h.GetLocationShiftInstances)
			})
		})

		r.Route("/shift-templates/{id}", func(r chi.Router) {
			r.Use(h.shiftTemplate)
			r.Get("/", h.GetShiftTemplate)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Patch("/", h.UpdateShiftTemplate)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Delete("/", h.DeleteShiftTemplate)
		})

		r.Route("/shift-instances/{id}", func(r chi.Router) {
			r.Use(h.shiftInstance)
			r.Get("/", h.GetShiftInstance)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Delete("/", h.DeleteShiftInstance)
			r.Route("/assignments", func(r chi.Router) {
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateShiftAssignment)
				r.Get("/", h.GetShiftInstanceAssignments)
			})
		})

		r.Route("/shift-assignments/{id}", func(r chi.Router) {
			r.Use(h.shiftAssignment)
			r.With(h.myInfo).Patch("/", h.UpdateShiftAssignmentStatus)
		})
	})
}
