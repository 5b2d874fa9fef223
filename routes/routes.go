package routes

import (
	"net/http"

	"vastra/auth"
	"vastra/checkout"
	"vastra/middleware"
	"vastra/orders"
	"vastra/products"
	"vastra/profile"
	"vastra/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddCheckoutRoutes(router, rateLimiter)
	AddOrderRoutes(router, rateLimiter)
	AddProductRoutes(router, rateLimiter)
	AddProfileRoutes(router, rateLimiter)
	AddStaticRoutes(router)
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))

	router.POST("/api/auth/send-otp", rateLimiter.Limit(auth.SendOTP))
	router.POST("/api/auth/verify-otp", rateLimiter.Limit(auth.VerifyOTP))
	router.POST("/api/auth/forgot-password", rateLimiter.Limit(auth.ForgotPassword))
	router.POST("/api/auth/reset-password", rateLimiter.Limit(auth.ResetPassword))
}

func AddCheckoutRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	svc := checkout.NewService()

	router.POST("/api/checkout/create-order", rateLimiter.Limit(middleware.Authenticate(svc.CreateOrder)))
	router.POST("/api/checkout/verify", rateLimiter.Limit(svc.VerifyPayment))
}

func AddOrderRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/orders", middleware.Authenticate(orders.GetOrders))
	router.GET("/api/orders/track", middleware.Authenticate(orders.TrackOrder))
	router.POST("/api/orders/cancel", middleware.Authenticate(orders.CancelOrder))
	router.POST("/api/orders/rating", middleware.Authenticate(orders.RateOrder))
	router.GET("/api/orders/order/:orderId", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/order/:orderId/invoice", rateLimiter.Limit(middleware.Authenticate(orders.PrintInvoice)))

	router.GET("/ws/orders/:orderId", orders.OrderUpdates)
}

func AddProductRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/products", middleware.OptionalAuth(products.GetProducts))
	router.POST("/api/products", middleware.Authenticate(products.CreateProduct))
	router.GET("/api/products/:id", middleware.OptionalAuth(products.GetProduct))
	router.GET("/api/products/:id/reviews", products.GetReviews)
	router.POST("/api/products/:id/reviews", middleware.Authenticate(products.AddReview))
	router.GET("/api/products/:id/ratings", products.GetOrderRatings)
	router.POST("/api/products/:id/images", rateLimiter.Limit(middleware.Authenticate(products.UploadImage)))
}

func AddProfileRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/user/me", middleware.Authenticate(profile.GetMe))
	router.PUT("/api/user/update", middleware.Authenticate(profile.UpdateProfile))

	router.POST("/api/user/address", middleware.Authenticate(profile.AddAddress))
	router.PUT("/api/user/address", middleware.Authenticate(profile.UpdateAddress))
	router.DELETE("/api/user/address", middleware.Authenticate(profile.DeleteAddress))

	router.POST("/api/user/payment", middleware.Authenticate(profile.AddPaymentMethod))
	router.DELETE("/api/user/payment", middleware.Authenticate(profile.DeletePaymentMethod))
}
