package repository

import (
	"context"
	"errors"
	"time"

	"famchat/internal/common"
	"famchat/internal/dbmysql"
	"famchat/internal/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=chat_repository.go -destination=mocks/mock_chat_repository.go -package=mocks

// ChatRepository is the message store used by the chat core. Every
// mutation goes through it; nothing above it caches message state.
type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *dbmysql.Message) error
	FetchMessageWithContext(ctx context.Context, messageID uint64) (*dbmysql.MessageContext, error)
	UpsertReaction(ctx context.Context, roomID, messageID, userID uint64, kind string) error
	SetLastRead(ctx context.Context, roomID, userID, messageID uint64) (bool, error)

	RoomExists(ctx context.Context, roomID uint64) (bool, error)
	IsMember(ctx context.Context, roomID, userID uint64) (bool, error)
	History(ctx context.Context, roomID, beforeID uint64, limit int) ([]*dbmysql.MessageContext, error)
	ReadState(ctx context.Context, roomID uint64) ([]dbmysql.MemberReadState, error)
	UnreadCounts(ctx context.Context, userID uint64) ([]dbmysql.UnreadCount, error)
}

const (
	countRoomSQL        = "SELECT count(*) FROM rooms WHERE id = ?"
	countUserSQL        = "SELECT count(*) FROM users WHERE id = ?"
	countRoomMessageSQL = "SELECT count(*) FROM chats WHERE id = ? AND room_id = ?"
	countMembershipSQL  = "SELECT count(*) FROM room_members WHERE room_id = ? AND user_id = ?"
	advanceLastReadSQL  = "UPDATE room_members SET last_read_message_id = ? WHERE room_id = ? AND user_id = ? AND (last_read_message_id IS NULL OR last_read_message_id < ?)"
	replySummariesSQL   = "SELECT c.id, c.content, c.type, u.username FROM chats c JOIN users u ON u.id = c.user_id WHERE c.id IN ?"
	reactionRowsSQL     = "SELECT r.message_id, r.type, r.user_id, u.username FROM message_reactions r JOIN users u ON u.id = r.user_id WHERE r.message_id IN ? ORDER BY r.id"
	authorsSQL          = "SELECT id, username, avatar_url FROM users WHERE id IN ?"
	readStateSQL        = "SELECT user_id, last_read_message_id FROM room_members WHERE room_id = ? ORDER BY user_id"
	unreadCountsSQL     = "SELECT rm.room_id AS room_id, COUNT(c.id) AS unread_count FROM room_members rm LEFT JOIN chats c ON c.room_id = rm.room_id AND c.id > COALESCE(rm.last_read_message_id, 0) WHERE rm.user_id = ? GROUP BY rm.room_id ORDER BY rm.room_id"
)

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{
		db: db,
	}
}

func (r *chatRepo) CreateMessage(ctx context.Context, msg *dbmysql.Message) error {
	defer observe("create_message", time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCount(tx, "room", countRoomSQL, msg.RoomID); err != nil {
			return err
		}
		if err := requireCount(tx, "user", countUserSQL, msg.UserID); err != nil {
			return err
		}
		if msg.ReplyToID != nil {
			if err := requireCount(tx, "reply target", countRoomMessageSQL, *msg.ReplyToID, msg.RoomID); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Create(msg).Error
	})
	return mapErr("create message", err)
}

// FetchMessageWithContext reads the message, its author, reply target and
// reactions inside one transaction so the view is never partial.
func (r *chatRepo) FetchMessageWithContext(ctx context.Context, messageID uint64) (*dbmysql.MessageContext, error) {
	defer observe("fetch_message", time.Now())

	var out *dbmysql.MessageContext
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msg dbmysql.Message
		if err := tx.Take(&msg, messageID).Error; err != nil {
			return err
		}
		var author dbmysql.User
		if err := tx.Take(&author, msg.UserID).Error; err != nil {
			return err
		}

		mc := &dbmysql.MessageContext{Message: msg, Author: author}

		if msg.ReplyToID != nil {
			var replies []dbmysql.ReplySummary
			if err := tx.Raw(replySummariesSQL, []uint64{*msg.ReplyToID}).Scan(&replies).Error; err != nil {
				return err
			}
			if len(replies) > 0 {
				mc.ReplyTo = &replies[0]
			}
		}

		if err := tx.Raw(reactionRowsSQL, []uint64{msg.ID}).Scan(&mc.Reactions).Error; err != nil {
			return err
		}

		out = mc
		return nil
	})
	if err != nil {
		return nil, mapErr("fetch message", err)
	}
	return out, nil
}

func (r *chatRepo) UpsertReaction(ctx context.Context, roomID, messageID, userID uint64, kind string) error {
	defer observe("upsert_reaction", time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCount(tx, "message", countRoomMessageSQL, messageID, roomID); err != nil {
			return err
		}
		reaction := &dbmysql.Reaction{
			MessageID: messageID,
			UserID:    userID,
			Type:      kind,
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(reaction).Error
	})
	return mapErr("upsert reaction", err)
}

// SetLastRead moves the read mark forward. It reports false when the
// stored mark was already at or past messageID.
func (r *chatRepo) SetLastRead(ctx context.Context, roomID, userID, messageID uint64) (bool, error) {
	defer observe("set_last_read", time.Now())

	advanced := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCount(tx, "message", countRoomMessageSQL, messageID, roomID); err != nil {
			return err
		}
		res := tx.Exec(advanceLastReadSQL, messageID, roomID, userID, messageID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			advanced = true
			return nil
		}
		// nothing changed: either a regression or not a member at all
		return requireCount(tx, "membership", countMembershipSQL, roomID, userID)
	})
	if err != nil {
		return false, mapErr("set last read", err)
	}
	return advanced, nil
}

func (r *chatRepo) RoomExists(ctx context.Context, roomID uint64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Raw(countRoomSQL, roomID).Scan(&n).Error; err != nil {
		return false, mapErr("room exists", err)
	}
	return n > 0, nil
}

func (r *chatRepo) IsMember(ctx context.Context, roomID, userID uint64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Raw(countMembershipSQL, roomID, userID).Scan(&n).Error; err != nil {
		return false, mapErr("is member", err)
	}
	return n > 0, nil
}

// History returns up to limit messages older than beforeID (0 means
// newest), oldest first.
func (r *chatRepo) History(ctx context.Context, roomID, beforeID uint64, limit int) ([]*dbmysql.MessageContext, error) {
	defer observe("history", time.Now())

	var out []*dbmysql.MessageContext
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("room_id = ?", roomID)
		if beforeID > 0 {
			q = q.Where("id < ?", beforeID)
		}
		var msgs []dbmysql.Message
		if err := q.Order("id DESC").Limit(limit).Find(&msgs).Error; err != nil {
			return err
		}
		if len(msgs) == 0 {
			return nil
		}

		var (
			msgIDs    = make([]uint64, 0, len(msgs))
			authorIDs = make([]uint64, 0, len(msgs))
			replyIDs  []uint64
			seen      = make(map[uint64]bool)
		)
		for _, m := range msgs {
			msgIDs = append(msgIDs, m.ID)
			if !seen[m.UserID] {
				seen[m.UserID] = true
				authorIDs = append(authorIDs, m.UserID)
			}
			if m.ReplyToID != nil {
				replyIDs = append(replyIDs, *m.ReplyToID)
			}
		}

		var authors []dbmysql.User
		if err := tx.Raw(authorsSQL, authorIDs).Scan(&authors).Error; err != nil {
			return err
		}
		authorByID := make(map[uint64]dbmysql.User, len(authors))
		for _, a := range authors {
			authorByID[a.ID] = a
		}

		replyByID := make(map[uint64]*dbmysql.ReplySummary)
		if len(replyIDs) > 0 {
			var replies []dbmysql.ReplySummary
			if err := tx.Raw(replySummariesSQL, replyIDs).Scan(&replies).Error; err != nil {
				return err
			}
			for i := range replies {
				replyByID[replies[i].ID] = &replies[i]
			}
		}

		var reactions []dbmysql.ReactionRow
		if err := tx.Raw(reactionRowsSQL, msgIDs).Scan(&reactions).Error; err != nil {
			return err
		}
		reactionsByMsg := make(map[uint64][]dbmysql.ReactionRow)
		for _, rr := range reactions {
			reactionsByMsg[rr.MessageID] = append(reactionsByMsg[rr.MessageID], rr)
		}

		out = make([]*dbmysql.MessageContext, 0, len(msgs))
		for i := len(msgs) - 1; i >= 0; i-- {
			m := msgs[i]
			mc := &dbmysql.MessageContext{
				Message:   m,
				Author:    authorByID[m.UserID],
				Reactions: reactionsByMsg[m.ID],
			}
			if m.ReplyToID != nil {
				mc.ReplyTo = replyByID[*m.ReplyToID]
			}
			out = append(out, mc)
		}
		return nil
	})
	if err != nil {
		return nil, mapErr("history", err)
	}
	return out, nil
}

func (r *chatRepo) ReadState(ctx context.Context, roomID uint64) ([]dbmysql.MemberReadState, error) {
	var states []dbmysql.MemberReadState
	if err := r.db.WithContext(ctx).Raw(readStateSQL, roomID).Scan(&states).Error; err != nil {
		return nil, mapErr("read state", err)
	}
	return states, nil
}

func (r *chatRepo) UnreadCounts(ctx context.Context, userID uint64) ([]dbmysql.UnreadCount, error) {
	var counts []dbmysql.UnreadCount
	if err := r.db.WithContext(ctx).Raw(unreadCountsSQL, userID).Scan(&counts).Error; err != nil {
		return nil, mapErr("unread counts", err)
	}
	return counts, nil
}

func requireCount(tx *gorm.DB, what, query string, args ...interface{}) error {
	var n int64
	if err := tx.Raw(query, args...).Scan(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return common.NotFoundf("%s", what)
	}
	return nil
}

func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrValidation) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NotFoundf("%s", op)
	}
	return common.StoreError(op, err)
}

func observe(op string, start time.Time) {
	metrics.StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
