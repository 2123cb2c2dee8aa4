package router

import (
    "github.com/labstack/echo/v4"

    "github.com/dkovacev/apartment-manager/internal/handler"
    "github.com/dkovacev/apartment-manager/internal/middleware"
    "github.com/dkovacev/apartment-manager/internal/model"
)

// RegisterAPI wires the owner-scoped and admin endpoints under /v1.  Every
// route requires a valid access token; the admin user-management routes
// additionally require the Admin role.  summaryCache is the Redis response
// cache middleware applied to the summary GETs only (pass nil to skip).
func RegisterAPI(e *echo.Echo, p *handler.PropertyHandler, admin *handler.AdminHandler, jwtSecret string, summaryCache echo.MiddlewareFunc) {
    v1 := e.Group("/v1")
    v1.Use(middleware.JWTAuth(jwtSecret))

    // Apartments: classic CRUD scoped to the authenticated owner.
    v1.POST("/apartments", p.CreateApartment)
    v1.GET("/apartments", p.ListApartments)
    v1.GET("/apartments/:id", p.GetApartment)
    v1.PUT("/apartments/:id", p.UpdateApartment)
    v1.DELETE("/apartments/:id", p.DeleteApartment)

    // Incomes: created against an apartment named in the payload, listed
    // per apartment, addressed by row id elsewhere.
    v1.POST("/incomes", p.CreateIncome)
    v1.GET("/apartments/:id/incomes", p.ListIncomesByApartment)
    v1.GET("/incomes/:id", p.GetIncome)
    v1.PUT("/incomes/:id", p.UpdateIncome)
    v1.DELETE("/incomes/:id", p.DeleteIncome)

    // Expenses mirror incomes plus the category field.
    v1.POST("/expenses", p.CreateExpense)
    v1.GET("/apartments/:id/expenses", p.ListExpensesByApartment)
    v1.GET("/expenses/:id", p.GetExpense)
    v1.PUT("/expenses/:id", p.UpdateExpense)
    v1.DELETE("/expenses/:id", p.DeleteExpense)

    // Summaries are read-heavy and deterministic for a given query, so they
    // sit behind the response cache when one is configured.
    sum := v1.Group("/summary")
    if summaryCache != nil {
        sum.Use(summaryCache)
    }
    sum.GET("/monthly", p.MonthlySummary)
    sum.GET("/yearly", p.YearlySummary)

    // Admin user management.
    adm := v1.Group("/users")
    adm.Use(middleware.RequireRole(model.RoleAdmin))
    adm.GET("", admin.ListUsers)
    adm.GET("/:id", admin.GetUser)
    adm.DELETE("/:id", admin.DeleteUser)
}
