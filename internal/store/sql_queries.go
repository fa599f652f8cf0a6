// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/GameServerX/dark-haven-website/models"
)

var userColumns = []string{
	"id",
	"username",
	"password_hash",
	"token",
	"is_admin",
	"email",
	"avatar_url",
	"bio",
	"online_status",
	"experience",
	"total_messages",
	"total_time_online",
	"created_at",
	"last_login",
	"last_seen",
}

var messageColumns = []string{
	"m.id",
	"m.user_id",
	"m.body",
	"m.created_at",
	"m.edited",
	"u.username",
	"u.avatar_url",
	"u.is_admin",
	"u.experience",
	"u.online_status",
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert("users").
		Columns("username", "password_hash", "token", "is_admin", "email", "online_status", "created_at", "last_login", "last_seen").
		Values(user.Username, user.PasswordHash, nullString(user.Token), user.IsAdmin, user.Email, user.OnlineStatus, user.CreatedAt, user.LastLogin, user.LastSeen).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return b.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
}

func buildTouchTokenQuery(b sq.StatementBuilderType, token string, now time.Time) (string, []any, error) {
	return b.Update("users").
		Set("last_seen", now).
		Where(sq.Eq{"token": token}).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateSessionQuery(b sq.StatementBuilderType, userID int64, token, passwordHash string, now time.Time) (string, []any, error) {
	update := b.Update("users").
		Set("token", token).
		Set("last_login", now).
		Set("last_seen", now).
		Set("online_status", models.OnlineStatusOnline)

	if passwordHash != "" {
		update = update.Set("password_hash", passwordHash)
	}

	return update.Where(sq.Eq{"id": userID}).ToSql()
}

func buildUpdateProfileQuery(b sq.StatementBuilderType, userID int64, update models.ProfileUpdate) (string, []any, error) {
	clauses := make(map[string]any, 4)
	if update.Bio != nil {
		clauses["bio"] = *update.Bio
	}
	if update.AvatarURL != nil {
		clauses["avatar_url"] = *update.AvatarURL
	}
	if update.OnlineStatus != nil {
		clauses["online_status"] = *update.OnlineStatus
	}
	if update.Experience != nil {
		clauses["experience"] = *update.Experience
	}

	return b.Update("users").
		SetMap(clauses).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildSearchUsersQuery(b sq.StatementBuilderType, query string, limit int) (string, []any, error) {
	pattern := "%" + escapeLike(query) + "%"

	// both sides go through the database's LOWER so the folding matches
	return b.Select(userColumns...).
		From("users").
		Where(sq.Expr(`LOWER(username) LIKE LOWER(?) ESCAPE '\'`, pattern)).
		OrderBy("username ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
}

func buildOnlineUsersQuery(b sq.StatementBuilderType, limit int) (string, []any, error) {
	return b.Select(userColumns...).
		From("users").
		Where(sq.Eq{"online_status": models.OnlineStatusOnline}).
		OrderBy("(last_seen IS NULL) ASC", "last_seen DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
}

// ── messages ──────────────────────────────────────────────────────────────────

func selectMessages(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(messageColumns...).
		From("messages m").
		Join("users u ON u.id = m.user_id")
}

func buildGetMessageQuery(b sq.StatementBuilderType, messageID int64) (string, []any, error) {
	return selectMessages(b).
		Where(sq.Eq{"m.id": messageID}).
		ToSql()
}

// buildFeedQuery selects the newest messages first; callers reverse the
// page to get chronological order. Ids are the only ordering key so that the
// before cursor pages without gaps or repeats.
func buildFeedQuery(b sq.StatementBuilderType, request models.FeedRequest) (string, []any, error) {
	query := selectMessages(b)
	if request.Before > 0 {
		query = query.Where(sq.Lt{"m.id": request.Before})
	}

	return query.
		OrderBy("m.id DESC").
		Limit(uint64(request.Limit)).
		ToSql()
}

func buildInsertMessageQuery(b sq.StatementBuilderType, msg models.Message) (string, []any, error) {
	return b.Insert("messages").
		Columns("user_id", "body", "created_at", "edited").
		Values(msg.UserID, msg.Text, msg.CreatedAt, false).
		Suffix("RETURNING id").
		ToSql()
}

func buildCreditAuthorQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Update("users").
		Set("total_messages", sq.Expr("total_messages + 1")).
		Set("experience", sq.Expr("experience + ?", models.ExperiencePerMessage)).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildUpdateMessageQuery(b sq.StatementBuilderType, messageID int64, text string) (string, []any, error) {
	return b.Update("messages").
		Set("body", text).
		Set("edited", true).
		Where(sq.Eq{"id": messageID}).
		ToSql()
}

func buildDeleteMessageQuery(b sq.StatementBuilderType, messageID int64) (string, []any, error) {
	return b.Delete("messages").
		Where(sq.Eq{"id": messageID}).
		ToSql()
}

// ── friends ───────────────────────────────────────────────────────────────────

func buildInsertFriendQuery(b sq.StatementBuilderType, userID, friendID int64, now time.Time) (string, []any, error) {
	return b.Insert("friends").
		Columns("user_id", "friend_id", "created_at").
		Values(userID, friendID, now).
		Suffix("ON CONFLICT (user_id, friend_id) DO NOTHING").
		ToSql()
}

func buildDeleteFriendQuery(b sq.StatementBuilderType, userID, friendID int64) (string, []any, error) {
	return b.Delete("friends").
		Where(sq.Eq{"user_id": userID, "friend_id": friendID}).
		ToSql()
}

func buildListFriendsQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("friend_id").
		From("friends").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("friend_id ASC").
		ToSql()
}

// ── helpers ───────────────────────────────────────────────────────────────────

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// nullString stores empty strings as NULL so that unique indexes ignore them.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
