package rest

import (
	"net/http"

	"bookstore-be/internal/i18n"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/transport"
	"bookstore-be/internal/user"

	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in user.RegisterInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	res, err := h.Users.Register(r.Context(), in)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, user.ToAuthResponse(res))
}

func (h *Handler) registerVendor(w http.ResponseWriter, r *http.Request) {
	var in user.VendorRegisterInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	res, err := h.Users.RegisterVendor(r.Context(), in)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}

	body := user.ToAuthResponse(res)
	body.Message = i18n.T(r.Context(), user.MsgVendorRegistered)
	transport.WriteJSON(w, http.StatusCreated, body)
}

// login signs the user in and moves a guest cart carried by the session
// cookie into the user's cart. A failed merge does not fail the login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	res, err := h.Users.Login(ctx, in.Email, in.Password)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}

	if session := h.Sessions.Key(r); session != "" {
		if _, err := h.Carts.Merge(ctx, session, res.User.ID); err != nil {
			logger.FromCtx(ctx).Warn("guest cart merge failed",
				zap.Uint("user_id", res.User.ID),
				zap.Error(err),
			)
		}
	}

	transport.WriteJSON(w, http.StatusOK, user.ToAuthResponse(res))
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	res, err := h.Users.Refresh(r.Context(), in.Refresh)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, refreshResponse{Access: res.Access})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	h.profile(w, r)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var in emailRequest
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	if err := h.Users.ForgotPassword(r.Context(), in.Email); err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteMessage(w, r, http.StatusOK, user.MsgPasswordResetSent)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in user.ResetPasswordInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	if err := h.Users.ResetPassword(r.Context(), in); err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteMessage(w, r, http.StatusOK, user.MsgPasswordChanged)
}

func (h *Handler) vendorCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Users.ListVendorCompanies(r.Context())
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, user.ToCompanyResponses(companies))
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.GetByID(r.Context(), currentUser(r))
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, user.ToResponse(u))
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in user.UpdateProfileParams
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	u, err := h.Users.UpdateProfile(r.Context(), currentUser(r), in)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, user.ToResponse(u))
}
