package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/session"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/view"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
)

var validate = validator.New()

// NewApp returns a Fiber app with the centralized JSON error handler and
// the global middleware.
func NewApp(name string, withLogger bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	if withLogger {
		app.Use(logger.New())
	}
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": name,
		})
	})
	return app
}

type searchBody struct {
	Query string `json:"query" validate:"required"`
}

type selectBody struct {
	Name string `json:"name" validate:"required"`
}

type historyQuery struct {
	Date string `validate:"required,datetime=2006-01-02"`
	Hour string `validate:"omitempty,datetime=15:04"`
}

// dashboardResponse is returned by every endpoint that changes or reads
// the current place.
type dashboardResponse struct {
	SessionID string         `json:"sessionId"`
	State     session.State  `json:"state"`
	View      view.Dashboard `json:"view"`
}

type historyResponse struct {
	session.Historical
	View view.Historical `json:"view"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, live *session.Live) {
	v1 := app.Group("/api/v1")

	dashboard := func(c *fiber.Ctx, st session.State) error {
		return c.Status(statusCode(st)).JSON(dashboardResponse{
			SessionID: live.ID,
			State:     st,
			View:      view.FromState(st),
		})
	}

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		st := live.State()
		if !st.HasPlace() {
			return fiber.NewError(fiber.StatusServiceUnavailable, "session is not initialized")
		}
		return dashboard(c, st)
	})

	v1.Post("/search", func(c *fiber.Ctx) error {
		var body searchBody
		if err := bind(c, &body); err != nil {
			return err
		}
		return dashboard(c, live.Search(c.UserContext(), body.Query))
	})

	v1.Post("/locate", func(c *fiber.Ctx) error {
		return dashboard(c, live.Init(c.UserContext()))
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		q := historyQuery{Date: c.Query("date"), Hour: c.Query("hour")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := live.Historical(c.UserContext(), q.Date, q.Hour)
		if err != nil {
			return fiber.NewError(historyErrorCode(err), session.Message(err))
		}
		return c.JSON(historyResponse{
			Historical: res,
			View:       view.BuildHistorical(res.Place, res.Hour),
		})
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		favs, err := live.Favorites()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load favorites")
		}
		return c.JSON(fiber.Map{"favorites": favs})
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		fav, added, err := live.SaveFavorite()
		if errors.Is(err, session.ErrNothingToSave) {
			return fiber.NewError(fiber.StatusConflict, "current place cannot be saved")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save favorite")
		}
		code := fiber.StatusOK
		if added {
			code = fiber.StatusCreated
		}
		return c.Status(code).JSON(fiber.Map{"favorite": fav, "added": added})
	})

	v1.Post("/favorites/select", func(c *fiber.Ctx) error {
		var body selectBody
		if err := bind(c, &body); err != nil {
			return err
		}
		st, err := live.SelectFavorite(c.UserContext(), body.Name)
		if errors.Is(err, session.ErrUnknownFavorite) {
			return fiber.NewError(fiber.StatusNotFound, "no favorite named "+body.Name)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load favorites")
		}
		return dashboard(c, st)
	})
}

func bind(c *fiber.Ctx, body any) error {
	if err := c.BodyParser(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func statusCode(st session.State) int {
	switch st.Status {
	case session.StatusNotFound:
		return fiber.StatusNotFound
	case session.StatusError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusOK
	}
}

func historyErrorCode(err error) int {
	switch {
	case errors.Is(err, session.ErrNoDate), errors.Is(err, session.ErrNotPast), errors.Is(err, session.ErrBadHour):
		return fiber.StatusBadRequest
	case errors.Is(err, session.ErrNoPlace):
		return fiber.StatusConflict
	case errors.Is(err, weather.ErrNoData):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}
