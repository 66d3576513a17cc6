package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/greeklink/greeklink/internal/app/controllers"
	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/middleware"
	"github.com/greeklink/greeklink/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	alumniController *controllers.AlumniController,
	connectionController *controllers.ConnectionController,
	messageController *controllers.MessageController,
	invitationController *controllers.InvitationController,
	chapterController *controllers.ChapterController,
	documentController *controllers.DocumentController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// The directory endpoint keeps its legacy path and response shape.
	// Anonymous viewers get the redacted projection, so auth is optional.
	router.GET("/api/alumni", authMiddleware.OptionalViewer(), alumniController.ListAlumni)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public Chapter routes ---
	chapters := v1.Group("/chapters")
	{
		chapters.GET("", chapterController.ListChapters)
		chapters.GET("/:id", chapterController.GetChapter)
	}

	// Invitation token lookup is public so the registration page can
	// show chapter and role before the invitee has an account.
	v1.GET("/invitations/token/:token", invitationController.GetInvitationByToken)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		// Profile routes
		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/me", profileController.GetMyProfile)
			profiles.PUT("/me", profileController.UpdateMyProfile)
			profiles.PUT("/me/draft", profileController.SaveDraft)
			profiles.GET("/me/draft", profileController.GetDraft)
			profiles.DELETE("/me/draft", profileController.DiscardDraft)
			profiles.GET("/:id", profileController.GetProfile)
		}

		// Connection routes
		connections := authenticated.Group("/connections")
		{
			connections.POST("", connectionController.RequestConnection)
			connections.GET("", connectionController.ListConnections)
			connections.PUT("/:id/respond", connectionController.RespondToConnection)
			connections.DELETE("/:id", connectionController.RemoveConnection)
		}

		// Messaging routes. Messages are created over REST; the websocket
		// endpoint only pushes them to connected recipients.
		messages := authenticated.Group("/messages")
		{
			messages.POST("/to/:userId", messageController.SendMessage)
			messages.GET("/conversations", messageController.ListConversations)
			messages.GET("/conversations/:id", messageController.GetMessages)
		}
		authenticated.GET("/ws", wsHandler.HandleConnection)

		// Invitation routes
		invitations := authenticated.Group("/invitations")
		{
			invitations.POST("", invitationController.CreateInvitation)
			invitations.GET("", invitationController.ListInvitations)
			invitations.DELETE("/:id", invitationController.RevokeInvitation)
		}

		// Chapter document routes
		chapterDocs := authenticated.Group("/chapters/:id/documents")
		{
			chapterDocs.POST("", documentController.UploadDocument)
			chapterDocs.GET("", documentController.ListDocuments)
		}
		authenticated.DELETE("/documents/:id", documentController.DeleteDocument)

		// Admin-only routes
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/chapters", chapterController.CreateChapter)
			admin.PUT("/chapters/:id", chapterController.UpdateChapter)
			admin.DELETE("/chapters/:id", chapterController.DeleteChapter)

			admin.GET("/alumni/:id", alumniController.GetAlumnus)
			admin.POST("/alumni", alumniController.CreateAlumnus)
			admin.PUT("/alumni/:id", alumniController.UpdateAlumnus)
			admin.DELETE("/alumni/:id", alumniController.DeleteAlumnus)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
