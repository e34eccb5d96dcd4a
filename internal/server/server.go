package server

import (
	"net/http"

	"shop/internal/config"
	"shop/internal/handler"
	"shop/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Depsはルーティングに必要な部品をまとめて受け取る。
type Deps struct {
	Cfg    config.Config
	Logger *zap.Logger

	Auth            *handler.AuthHandler
	Users           *handler.UserHandler
	Products        *handler.ProductHandler
	Categories      *handler.CategoryHandler
	Orders          *handler.OrderHandler
	AdminOrders     *handler.AdminOrderHandler
	AdminProducts   *handler.AdminProductHandler
	AdminUsers      *handler.AdminUserHandler
	AdminCategories *handler.AdminCategoryHandler
}

// Newはechoを組み立てて返す。起動はmain側で行う。
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLogger(d.Logger))

	//死活監視
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	d.Auth.RegisterRoutes(e)
	d.Users.RegisterRoutes(e, d.Cfg)
	d.Products.RegisterRoutes(e)
	d.Categories.RegisterRoutes(e)
	d.Orders.RegisterRoutes(e, d.Cfg)
	d.AdminOrders.RegisterRoutes(e, d.Cfg)
	d.AdminProducts.RegisterRoutes(e, d.Cfg)
	d.AdminUsers.RegisterRoutes(e, d.Cfg)
	d.AdminCategories.RegisterRoutes(e, d.Cfg)

	return e
}
