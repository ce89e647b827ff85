package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/logging"
	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/sched"
)

type SchedulerHandler interface {
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTime(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	logger *slog.Logger
}

func NewSchedulerHandlerImpl(logger *slog.Logger) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{logger: logger}
}

// NewApp wires the handler into a fiber app under /api/v1.
func NewApp(h SchedulerHandler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Get("/health", h.Health)
		v1.Post("/sjf", h.ShortestJobFirst)
		v1.Post("/srt", h.ShortestRemainingTime)
		v1.Post("/all", h.AllAlgorithms)
	}
	return app
}

func (s *SchedulerHandlerImpl) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, sched.SJF{})
}

func (s *SchedulerHandlerImpl) ShortestRemainingTime(ctx *fiber.Ctx) error {
	return s.schedule(ctx, sched.SRT{})
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	var request ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "invalid request format")
	}

	responses := make([]ScheduleResponse, 0, len(sched.Policies()))
	for _, p := range sched.Policies() {
		response, err := s.simulate(ctx, request, p)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		responses = append(responses, response)
	}
	return ctx.JSON(responses)
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, p sched.Policy) error {
	var request ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "invalid request format")
	}

	response, err := s.simulate(ctx, request, p)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) simulate(ctx *fiber.Ctx, request ScheduleRequest, p sched.Policy) (ScheduleResponse, error) {
	result, err := sched.Simulate(ctx.UserContext(), request.Processes, p, sched.WithLogger(s.logger))
	if err != nil {
		s.logger.Warn("can not process request",
			slog.String("policy", p.Name()),
			slog.Int("processes", len(request.Processes)),
			logging.ErrAttr(err),
		)
		return ScheduleResponse{}, err
	}
	return newScheduleResponse(result)
}

func badRequest(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
