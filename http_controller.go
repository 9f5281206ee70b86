package accounts

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/nyaruka/phonenumbers"
)

// ControllerRoutes are the paths the controller mounts its handlers on.
type ControllerRoutes struct {
	Register string
	Activate string
	Login    string
	Logout   string
	Me       string
	Users    string
}

// Controller exposes the account lifecycle over HTTP as a JSON API. Routes
// behind authentication are wrapped with the session guard handler.
type Controller struct {
	Debug   bool
	Logger  Logger
	Manager *Manager
	Repo    RepositoryManager
	Guard   fiber.Handler
	Routes  *ControllerRoutes
}

type ControllerOption func(*Controller) *Controller

func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger: defLogger{},
		Routes: &ControllerRoutes{
			Register: "/register",
			Activate: "/activate",
			Login:    "/login",
			Logout:   "/logout",
			Me:       "/me",
			Users:    "/users",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Manager == nil {
		panic("Missing lifecycle Manager in accounts controller...")
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in accounts controller...")
	}

	if c.Guard == nil {
		panic("Missing session guard in accounts controller...")
	}

	return c
}

func WithControllerLogger(logger Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithManager(m *Manager) ControllerOption {
	return func(c *Controller) *Controller {
		c.Manager = m
		return c
	}
}

func WithRepository(repo RepositoryManager) ControllerOption {
	return func(c *Controller) *Controller {
		c.Repo = repo
		return c
	}
}

func WithGuard(guard fiber.Handler) ControllerOption {
	return func(c *Controller) *Controller {
		c.Guard = guard
		return c
	}
}

func WithDebug(debug bool) ControllerOption {
	return func(c *Controller) *Controller {
		c.Debug = debug
		return c
	}
}

// RegisterRoutes mounts the lifecycle endpoints. Logout, Me, and Users sit
// behind the session guard.
func (a *Controller) RegisterRoutes(app *fiber.App) {
	app.Post(a.Routes.Register, a.Register)
	app.Post(a.Routes.Activate, a.Activate)
	app.Post(a.Routes.Login, a.Login)

	app.Get(a.Routes.Logout, a.Guard, a.Logout)
	app.Get(a.Routes.Me, a.Guard, a.Me)
	app.Get(a.Routes.Users, a.Guard, a.Users)
}

// RegisterPayload is the registration body.
type RegisterPayload struct {
	Name        string `form:"name" json:"name"`
	Email       string `form:"email" json:"email"`
	Password    string `form:"password" json:"password"`
	PhoneNumber string `form:"phone_number" json:"phone_number"`
}

// Validate will validate the payload
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.PhoneNumber, validation.Required, validation.Length(7, 15), is.Digit),
	)
}

// normalizedPhone formats the phone in E.164 when it parses as a real
// number; shorter test fixtures fall through untouched.
func (r RegisterPayload) normalizedPhone() string {
	num, err := phonenumbers.Parse(r.PhoneNumber, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return r.PhoneNumber
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

func (a *Controller) Register(c *fiber.Ctx) error {
	payload := new(RegisterPayload)

	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "Error parsing body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	token, err := a.Manager.Register(c.Context(), RegisterInput{
		Name:        payload.Name,
		Email:       payload.Email,
		Password:    payload.Password,
		PhoneNumber: payload.normalizedPhone(),
	})
	if err != nil {
		a.Logger.Error("Register error", "error", err)
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"activation_token": token,
	})
}

// ActivatePayload is the activation body.
type ActivatePayload struct {
	ActivationToken string `form:"activation_token" json:"activation_token"`
	ActivationCode  string `form:"activation_code" json:"activation_code"`
}

// Validate will validate the payload
func (r ActivatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ActivationToken, validation.Required),
		validation.Field(&r.ActivationCode, validation.Required, is.Digit),
	)
}

func (a *Controller) Activate(c *fiber.Ctx) error {
	payload := new(ActivatePayload)

	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "Error parsing body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	user, err := a.Manager.Activate(c.Context(), payload.ActivationToken, payload.ActivationCode)
	if err != nil {
		a.Logger.Error("Activate error", "error", err)
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

// LoginPayload is the login body.
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *Controller) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := c.BodyParser(payload); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "Error parsing body").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	result, err := a.Manager.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("Login error", "error", err)
		return err
	}

	// A credential mismatch is data, not an error: the result carries the
	// message and the status stays 200.
	return c.JSON(result)
}

// Logout clears the caller-visible identity and token header state. Any
// already-issued token stays valid until its own expiry; there is no
// server-side revocation.
func (a *Controller) Logout(c *fiber.Ctx) error {
	c.Locals(GuardResultKey, nil)
	c.Request().Header.Del(HeaderAccessToken)
	c.Request().Header.Del(HeaderRefreshToken)
	c.Request().Header.Del(HeaderUser)
	c.Set(HeaderAccessToken, "")
	c.Set(HeaderRefreshToken, "")
	c.Set(HeaderUser, "")

	return c.JSON(fiber.Map{
		"message": "Logged out successfully!",
	})
}

// Me returns the authenticated user along with the rotated token pair the
// guard attached to this request.
func (a *Controller) Me(c *fiber.Ctx) error {
	result, ok := c.Locals(GuardResultKey).(*GuardResult)
	if !ok || result == nil {
		return ErrLoginRequired
	}

	return c.JSON(result)
}

func (a *Controller) Users(c *fiber.Ctx) error {
	records, err := a.Repo.Users().List(c.Context())
	if err != nil {
		a.Logger.Error("Users list error", "error", err)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users")
	}

	return c.JSON(fiber.Map{
		"users": records,
	})
}

// GuardResultKey is the fiber.Ctx locals key the session guard stores its
// GuardResult under.
const GuardResultKey = "accounts:guard"

func validationError(err error) error {
	richErr := goerrors.Wrap(err, goerrors.CategoryValidation, "Error validating payload").
		WithCode(goerrors.CodeBadRequest)

	if fields, ok := err.(validation.Errors); ok {
		meta := map[string]any{}
		for name, ferr := range fields {
			meta[name] = ferr.Error()
		}
		richErr = richErr.WithMetadata(meta)
	}

	return richErr
}

// ErrorHandler maps categorized errors onto HTTP statuses and a JSON error
// envelope. Wire it as the fiber app's ErrorHandler.
func ErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var richErr *goerrors.Error
		if !goerrors.As(err, &richErr) {
			if fiberErr, ok := err.(*fiber.Error); ok {
				return c.Status(fiberErr.Code).JSON(fiber.Map{
					"error": fiber.Map{"message": fiberErr.Message},
				})
			}
			richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
				WithCode(goerrors.CodeInternal)
		}

		logger.Info(
			"Request error handler",
			"error", richErr.Message,
			"category", richErr.Category,
			"details", print.MaybePrettyJSON(richErr.Metadata),
		)

		status := richErr.Code
		if status == 0 {
			status = statusForCategory(richErr.Category)
		}

		body := fiber.Map{
			"message": richErr.Message,
		}
		if richErr.TextCode != "" {
			body["text_code"] = richErr.TextCode
		}
		if len(richErr.Metadata) > 0 {
			body["fields"] = richErr.Metadata
		}

		return c.Status(status).JSON(fiber.Map{"error": body})
	}
}

func statusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
