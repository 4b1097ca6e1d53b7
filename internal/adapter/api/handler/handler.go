package handler

import (
	"cidadealerta/internal/usecase"
)

var (
	authHandler  *AuthHandler
	userHandler  *UserHandler
	issueHandler *IssueHandler
	adminHandler *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	issueUseCase *usecase.IssueUseCase,
	adminUseCase *usecase.AdminUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(authUseCase)
	issueHandler = NewIssueHandler(issueUseCase)
	adminHandler = NewAdminHandler(adminUseCase, issueUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetIssueHandler() *IssueHandler {
	return issueHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
