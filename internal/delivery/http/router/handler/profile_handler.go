package handler

import (
	"log/slog"
	"net/http"

	"plateful/internal/delivery/http/response"
	"plateful/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for the profile endpoints.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// UpdateProfile handles a partial update of the authenticated user's profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated successfully")
}

// avatarURLPayload is the JSON body for setting an avatar from a remote URL.
type avatarURLPayload struct {
	URL string `json:"url" validate:"required,url"`
}

// SetAvatar handles an avatar change. Multipart requests carry the image in
// the "avatar" file field; JSON requests carry a remote URL to fetch.
func (h *ProfileHandler) SetAvatar(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	input := &usecase.SetAvatarInput{}

	if fileHeader, err := c.FormFile("avatar"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Unable to read uploaded avatar")
		}
		defer func() { _ = file.Close() }()

		input.Upload = file
		input.ContentType = fileHeader.Header.Get("Content-Type")
	} else {
		var payload *avatarURLPayload
		if err := c.Bind(&payload); err != nil || payload == nil {
			return response.BindingError(c, "INVALID_INPUT", "Avatar requires a file upload or a url")
		}
		if err := c.Validate(payload); err != nil {
			return errors.WithStack(err)
		}

		input.RemoteURL = payload.URL
	}

	user, err := h.uc.SetAvatar(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Avatar updated successfully")
}
