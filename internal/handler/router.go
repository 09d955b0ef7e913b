package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mateus-ssouza/sevencc-bank/internal/middleware"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

// RegisterRoutes wires every resource handler onto the engine. Customers
// open and inspect their own account; the back-office listing, lookup and
// deletion routes require the admin role.
func RegisterRoutes(
	router *gin.Engine,
	auth *AuthHandler,
	branches *BranchHandler,
	customers *UserHandler,
	admins *UserHandler,
	accounts *AccountHandler,
	transactions *TransactionHandler,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authGroup := router.Group("/v1/auth")
	{
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/refresh", auth.RefreshToken)
	}

	customerGroup := router.Group("/v1/customers")
	{
		customerGroup.POST("", customers.Register)

		authed := customerGroup.Group("", middleware.AuthMiddleware())
		authed.GET("", middleware.RequireRole(models.RoleAdmin), customers.ListCustomers)
		authed.GET("/:id", customers.GetUser)
		authed.PUT("/:id", customers.UpdateUser)
		authed.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), customers.DeleteUser)
	}

	adminGroup := router.Group("/v1/admins", middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		adminGroup.POST("", admins.Register)
		adminGroup.GET("/:id", admins.GetUser)
		adminGroup.PUT("/:id", admins.UpdateUser)
		adminGroup.DELETE("/:id", admins.DeleteUser)
	}

	branchGroup := router.Group("/v1/branches", middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		branchGroup.POST("", branches.CreateBranch)
		branchGroup.GET("", branches.ListBranches)
		branchGroup.GET("/:id", branches.GetBranch)
		branchGroup.PUT("/:id", branches.UpdateBranch)
		branchGroup.DELETE("/:id", branches.DeleteBranch)
	}

	accountGroup := router.Group("/v1/accounts", middleware.AuthMiddleware())
	{
		accountGroup.POST("", accounts.CreateAccount)
		accountGroup.GET("", middleware.RequireRole(models.RoleAdmin), accounts.ListAccounts)
		accountGroup.GET("/me", accounts.GetOwnAccount)
		accountGroup.GET("/:id", middleware.RequireRole(models.RoleAdmin), accounts.GetAccount)
		accountGroup.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), accounts.DeleteAccount)
	}

	transactionGroup := router.Group("/v1/transactions", middleware.AuthMiddleware())
	{
		transactionGroup.POST("/deposit", transactions.Deposit)
		transactionGroup.POST("/withdraw", transactions.Withdraw)
		transactionGroup.POST("/transfer", transactions.Transfer)
		transactionGroup.GET("/statement", transactions.GetStatement)
	}
}
