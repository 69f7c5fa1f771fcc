package router

import (
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"carlot/docs"
	"carlot/internal/config"
	apperrors "carlot/internal/errors"
	"carlot/internal/handler"
	"carlot/internal/middleware"
)

// Register wires routes, guards, and the centralized error handler.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMW *middleware.Auth,
	baseHandler *handler.BaseHandler,
	accountHandler *handler.AccountHandler,
	inventoryHandler *handler.InventoryHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Every request loads the cookie identity (or proceeds anonymous).
	e.Use(authMW.LoadIdentity())

	e.Validator = NewCustomValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	docs.SwaggerInfo.Host = cfg.SwaggerHost
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public pages
	e.GET("/", baseHandler.Home)
	e.GET("/test-error", baseHandler.TestError)

	// Account routes
	account := e.Group("/account")
	account.GET("/login", accountHandler.LoginView)
	account.POST("/login", accountHandler.Login)
	account.GET("/register", accountHandler.RegisterView)
	account.POST("/register", accountHandler.Register)
	account.GET("/logout", accountHandler.Logout)
	account.GET("", accountHandler.Management, authMW.RequireLogin)
	account.POST("/update", accountHandler.Update, authMW.RequireLogin)
	account.POST("/update-password", accountHandler.UpdatePassword, authMW.RequireLogin)

	// Inventory routes: browsing is public, management is Employee/Admin.
	inv := e.Group("/inv")
	inv.GET("/type/:classificationId", inventoryHandler.Classification)
	inv.GET("/detail/:invId", inventoryHandler.Detail)
	inv.GET("/getInventory/:classification_id", inventoryHandler.GetInventoryJSON)

	staff := inv.Group("", authMW.RequireLogin, authMW.RequireStaff)
	staff.GET("", inventoryHandler.Management)
	staff.GET("/add-classification", inventoryHandler.AddClassificationView)
	staff.POST("/add-classification", inventoryHandler.AddClassification)
	staff.GET("/add-vehicle", inventoryHandler.AddVehicleView)
	staff.POST("/add-vehicle", inventoryHandler.AddVehicle)
	staff.GET("/edit/:inv_id", inventoryHandler.EditView)
	staff.POST("/update", inventoryHandler.Update)
	staff.GET("/delete/:inv_id", inventoryHandler.DeleteView)
	staff.POST("/delete", inventoryHandler.Delete)

	// Admin approval routes
	admin := e.Group("/admin", authMW.RequireLogin, authMW.RequireAdmin)
	admin.GET("/approval", adminHandler.Dashboard)
	admin.POST("/approve", adminHandler.Approve)
	admin.POST("/reject", adminHandler.Reject)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator builds the validator with the site's password rule
// registered.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("strongpassword", validateStrongPassword)
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// validateStrongPassword enforces the registration password policy: at least
// 12 characters with upper, lower, digit, and symbol.
func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 12 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// NewHTTPErrorHandler renders every uncaught error as a status-coded JSON
// error page payload, with per-status default messages.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var body apperrors.ErrorResponse

		switch e := err.(type) {
		case *echo.HTTPError:
			status = e.Code
			switch msg := e.Message.(type) {
			case apperrors.ErrorResponse:
				body = msg
			case string:
				body = apperrors.ErrorResponse{Error: msg, Code: codeForStatus(status)}
			}
		case *apperrors.HTTPError:
			status = e.StatusCode
			body = e.ToErrorResponse()
		}

		if body.Error == "" {
			body = apperrors.ErrorResponse{Error: defaultMessage(status), Code: codeForStatus(status)}
		}

		c.Logger().Errorf("error at %q: %v", c.Request().RequestURI, err)

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func defaultMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request. Please check your input."
	case http.StatusUnauthorized:
		return "Unauthorized. Please log in."
	case http.StatusForbidden:
		return "Forbidden. You do not have permission."
	case http.StatusNotFound:
		return "Sorry, that page could not be found."
	default:
		return "Something went wrong on our end. Please try again."
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}
