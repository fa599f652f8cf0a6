package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/GameServerX/dark-haven-website/internal/config"
	"github.com/GameServerX/dark-haven-website/internal/logger"
	"github.com/GameServerX/dark-haven-website/internal/utils"
	"github.com/GameServerX/dark-haven-website/models"
)

const (
	authPath    = "/api/auth"
	chatPath    = "/api/chat"
	usersPath   = "/api/users"
	uploadPath  = "/api/upload"
	versionPath = "/api/version"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds a [ServerAdapter] for cfg.ServerURL. A bare
// "host:port" address gets the http scheme.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	adapter := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	adapter.SetToken(cfg.Token)

	return adapter, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = utils.ParseBearerToken(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ── auth ─────────────────────────────────────────────────────────────────────

func (h *httpServerAdapter) Register(ctx context.Context, credentials models.Credentials) (models.SessionResponse, error) {
	return h.session(ctx, models.AuthActionRegister, credentials)
}

func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.SessionResponse, error) {
	return h.session(ctx, models.AuthActionLogin, credentials)
}

func (h *httpServerAdapter) session(ctx context.Context, action string, credentials models.Credentials) (models.SessionResponse, error) {
	var session models.SessionResponse

	body := models.AuthRequest{
		Action:   action,
		Username: credentials.Username,
		Password: credentials.Password,
		Email:    credentials.Email,
	}
	if err := h.do(h.request(ctx).SetBody(body).SetResult(&session), resty.MethodPost, authPath); err != nil {
		return models.SessionResponse{}, fmt.Errorf("%s request: %w", action, err)
	}

	h.SetToken(session.Token)
	h.logger.Debug().Str("action", action).Int64("user_id", session.User.ID).Msg("session opened")

	return session, nil
}

func (h *httpServerAdapter) Verify(ctx context.Context) (models.Profile, error) {
	var response models.UserResponse

	body := models.AuthRequest{Action: models.AuthActionVerify}
	if err := h.do(h.request(ctx).SetBody(body).SetResult(&response), resty.MethodPost, authPath); err != nil {
		return models.Profile{}, fmt.Errorf("verify request: %w", err)
	}
	return response.User, nil
}

func (h *httpServerAdapter) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	var response models.ProfileUpdatedResponse

	body := models.AuthRequest{Action: models.AuthActionUpdateProfile, ProfileUpdate: update}
	if err := h.do(h.request(ctx).SetBody(body).SetResult(&response), resty.MethodPost, authPath); err != nil {
		return models.Profile{}, fmt.Errorf("update profile request: %w", err)
	}
	return response.User, nil
}

// ── chat ─────────────────────────────────────────────────────────────────────

func (h *httpServerAdapter) Feed(ctx context.Context, request models.FeedRequest) ([]models.MessageView, error) {
	var response models.FeedResponse

	req := h.request(ctx).SetResult(&response)
	if request.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(request.Limit))
	}
	if request.Before > 0 {
		req.SetQueryParam("before", strconv.FormatInt(request.Before, 10))
	}

	if err := h.do(req, resty.MethodGet, chatPath); err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	return response.Messages, nil
}

func (h *httpServerAdapter) Send(ctx context.Context, text string) (models.MessageView, error) {
	var response models.MessageResponse

	req := h.request(ctx).SetBody(models.MessageInput{Message: text}).SetResult(&response)
	if err := h.do(req, resty.MethodPost, chatPath); err != nil {
		return models.MessageView{}, fmt.Errorf("send request: %w", err)
	}
	return response.Message, nil
}

func (h *httpServerAdapter) Edit(ctx context.Context, messageID int64, text string) (models.MessageView, error) {
	var response models.MessageResponse

	req := h.request(ctx).
		SetQueryParam("id", strconv.FormatInt(messageID, 10)).
		SetBody(models.MessageInput{Message: text}).
		SetResult(&response)
	if err := h.do(req, resty.MethodPatch, chatPath); err != nil {
		return models.MessageView{}, fmt.Errorf("edit request: %w", err)
	}
	return response.Message, nil
}

func (h *httpServerAdapter) Delete(ctx context.Context, messageID int64) error {
	req := h.request(ctx).SetQueryParam("id", strconv.FormatInt(messageID, 10))
	if err := h.do(req, resty.MethodDelete, chatPath); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}

// ── users ────────────────────────────────────────────────────────────────────

func (h *httpServerAdapter) Profile(ctx context.Context, userID int64) (models.Profile, error) {
	var response models.UserResponse

	req := h.request(ctx).SetQueryParam("id", strconv.FormatInt(userID, 10)).SetResult(&response)
	if err := h.do(req, resty.MethodGet, usersPath); err != nil {
		return models.Profile{}, fmt.Errorf("profile request: %w", err)
	}
	return response.User, nil
}

func (h *httpServerAdapter) Search(ctx context.Context, query string) ([]models.UserSummary, error) {
	var response models.UsersResponse

	req := h.request(ctx).SetQueryParam("search", query).SetResult(&response)
	if err := h.do(req, resty.MethodGet, usersPath); err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	return response.Users, nil
}

func (h *httpServerAdapter) Online(ctx context.Context) ([]models.UserSummary, error) {
	var response models.UsersResponse

	if err := h.do(h.request(ctx).SetResult(&response), resty.MethodGet, usersPath); err != nil {
		return nil, fmt.Errorf("online request: %w", err)
	}
	return response.Users, nil
}

func (h *httpServerAdapter) AddFriend(ctx context.Context, friendID int64) ([]int64, error) {
	return h.friendAction(ctx, models.FriendActionAdd, friendID)
}

func (h *httpServerAdapter) RemoveFriend(ctx context.Context, friendID int64) ([]int64, error) {
	return h.friendAction(ctx, models.FriendActionRemove, friendID)
}

func (h *httpServerAdapter) friendAction(ctx context.Context, action string, friendID int64) ([]int64, error) {
	var response models.FriendsResponse

	req := h.request(ctx).
		SetBody(models.FriendRequest{Action: action, FriendID: friendID}).
		SetResult(&response)
	if err := h.do(req, resty.MethodPost, usersPath); err != nil {
		return nil, fmt.Errorf("friend %s request: %w", action, err)
	}
	return response.Friends, nil
}

// ── misc ─────────────────────────────────────────────────────────────────────

func (h *httpServerAdapter) Upload(ctx context.Context, request models.UploadRequest) (models.UploadResult, error) {
	var result models.UploadResult

	if err := h.do(h.request(ctx).SetBody(request).SetResult(&result), resty.MethodPost, uploadPath); err != nil {
		return models.UploadResult{}, fmt.Errorf("upload request: %w", err)
	}
	return result, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get(versionPath)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	return strings.TrimSpace(resp.String()), nil
}

// request starts a JSON request carrying the stored token, if any.
func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if token := h.Token(); token != "" {
		req.SetHeader("X-Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpServerAdapter) do(req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	return mapHTTPError(resp)
}
