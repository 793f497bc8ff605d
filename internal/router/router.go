package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tamik3/oy-vey-pay/internal/record"
	"github.com/tamik3/oy-vey-pay/internal/reports"
	"github.com/tamik3/oy-vey-pay/internal/user"
)

type Router struct {
	AuthHandler    *user.Handler
	ExpenseHandler *record.Handler
	IncomeHandler  *record.Handler
	ReportsHandler *reports.Handler
	AuthMW         fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	authLimit := RateLimitAuth()
	api.Post("/sign-up", authLimit, r.AuthHandler.SignUp)
	api.Post("/sign-in", authLimit, r.AuthHandler.SignIn)
	api.Post("/log-out", r.AuthHandler.LogOut)
	api.Get("/me", r.AuthMW, r.AuthHandler.Me)

	api.Post("/add-expense/:userId", r.AuthMW, r.ExpenseHandler.Add)
	api.Get("/get-expenses/:userId", r.AuthMW, r.ExpenseHandler.List)
	api.Patch("/update-expense/:userId/:expenseId", r.AuthMW, r.ExpenseHandler.Update)
	api.Delete("/delete-expense/:userId/:expenseId", r.AuthMW, r.ExpenseHandler.Delete)
	api.Get("/get-total-expense-amount/:userId", r.AuthMW, r.ExpenseHandler.Total)

	api.Post("/add-income/:userId", r.AuthMW, r.IncomeHandler.Add)
	api.Get("/get-incomes/:userId", r.AuthMW, r.IncomeHandler.List)
	api.Patch("/update-income/:userId/:incomeId", r.AuthMW, r.IncomeHandler.Update)
	api.Delete("/delete-income/:userId/:incomeId", r.AuthMW, r.IncomeHandler.Delete)
	api.Get("/get-total-income-amount/:userId", r.AuthMW, r.IncomeHandler.Total)

	api.Get("/get-statement/:userId", r.AuthMW, r.ReportsHandler.Statement)
}
