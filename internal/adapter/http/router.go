package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freshcart/freshcart-api/internal/adapter/http/middleware"
	"github.com/freshcart/freshcart-api/internal/logging"
)

type RouterDeps struct {
	Cart   *CartHandler
	Order  *OrderHandler
	Recipe *RecipeHandler
	Token  *TokenHandler
	Authz  *middleware.Authz

	AllowedOrigins []string
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	r.Use(middleware.Logging(logging.New("http")))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = d.AllowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", d.Token.IssueToken)

	v1 := r.Group("/v1", d.Authz.Require())
	{
		v1.GET("/cart", d.Cart.GetCart)
		v1.POST("/cart/items", d.Cart.AddItem)
		v1.PATCH("/cart/items/:productId", d.Cart.AdjustQuantity)
		v1.DELETE("/cart/items/:productId", d.Cart.RemoveItem)
		v1.DELETE("/cart", d.Cart.ClearCart)

		v1.POST("/checkout", d.Order.Checkout)
		v1.GET("/orders", d.Order.ListOrders)
		v1.GET("/orders/:id/status", d.Order.GetOrderStatus)

		v1.POST("/recipes/ingredients", d.Recipe.SuggestIngredients)
	}

	return r
}
