// Package notesclient is the direct-to-store note gateway used by client
// programs. It never relies on the server's route checks: every operation
// is pre-scoped to the signed-in identity before it reaches the store, with
// the store's own owner-guarded queries as the final backstop.
package notesclient

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"thinkpad-notes-be/internal/constant"
	"thinkpad-notes-be/internal/dto"
	"thinkpad-notes-be/internal/entity"
	"thinkpad-notes-be/internal/policy"
	"thinkpad-notes-be/pkg/identity"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrAuthRequired = errors.New("you must be signed in to access notes")
	ErrNotOwner     = errors.New("you do not have permission to access this note")
	ErrEmptyFields  = errors.New("title and content are required")
)

// Store is the slice of the document store the client needs. Reads return
// the storage layer's not-found error unchanged.
type Store interface {
	Create(ctx context.Context, note *entity.Note) error
	GetById(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	ListByOwner(ctx context.Context, ownerId string) ([]*entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID, ownerId string) error
}

// Client binds a Session to a Store. Mutations and note-changed events both
// trigger a fresh listing on the Refreshed channel, so a view only ever
// renders what a new query would return.
type Client struct {
	session *identity.Session
	store   Store

	refreshed chan []*entity.Note

	mu          sync.Mutex
	cancel      context.CancelFunc
	done        chan struct{}
	unsubscribe func()
}

func New(session *identity.Session, store Store, subscriber message.Subscriber) (*Client, error) {
	ctx, cancel := context.WithCancel(context.Background())

	messages, err := subscriber.Subscribe(ctx, constant.NoteChangedTopicName)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "subscribing to note changes")
	}

	authChanges, unsubscribe := session.Subscribe()

	c := &Client{
		session:     session,
		store:       store,
		refreshed:   make(chan []*entity.Note, 1),
		cancel:      cancel,
		done:        make(chan struct{}),
		unsubscribe: unsubscribe,
	}

	go c.watch(ctx, messages, authChanges)
	return c, nil
}

// Refreshed delivers the latest owner-scoped listing after every mutation
// or identity change. A nil listing means the identity went absent.
func (c *Client) Refreshed() <-chan []*entity.Note {
	return c.refreshed
}

// ListOwn re-queries the caller's notes, newest first. The result is a
// snapshot; call again for fresh data.
func (c *Client) ListOwn(ctx context.Context) ([]*entity.Note, error) {
	uid, err := c.currentUid()
	if err != nil {
		return nil, err
	}
	return c.listFor(ctx, uid)
}

func (c *Client) Create(ctx context.Context, title, content string) (*entity.Note, error) {
	uid, err := c.currentUid()
	if err != nil {
		return nil, err
	}

	// fast-fail before any round trip
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFields
	}

	note := entity.Note{
		Id:      uuid.New(),
		OwnerId: uid,
		Title:   title,
		Content: content,
	}
	if err := c.store.Create(ctx, &note); err != nil {
		return nil, err
	}

	c.refresh(ctx, uid)
	return &note, nil
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, title, content string) (*entity.Note, error) {
	uid, err := c.currentUid()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFields
	}

	note, err := c.loadOwned(ctx, policy.OpUpdate, id, uid)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content
	if err := c.store.Update(ctx, note); err != nil {
		return nil, err
	}

	c.refresh(ctx, uid)
	return note, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	uid, err := c.currentUid()
	if err != nil {
		return err
	}

	if _, err := c.loadOwned(ctx, policy.OpDelete, id, uid); err != nil {
		return err
	}

	if err := c.store.Delete(ctx, id, uid); err != nil {
		return err
	}

	c.refresh(ctx, uid)
	return nil
}

// Close tears the client down and unsubscribes from identity changes so no
// late notification acts on a dead view.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.unsubscribe()
	<-c.done
	c.cancel = nil
}

// currentUid snapshots the identity once per operation. A sign-in or
// sign-out racing with the operation cannot re-attribute it.
func (c *Client) currentUid() (string, error) {
	state := c.session.Current()
	if state.State != identity.StatePresent {
		return "", ErrAuthRequired
	}
	return state.Uid, nil
}

// loadOwned fetches the record and checks ownership locally before any
// write is attempted. Existence is decided first, then ownership.
func (c *Client) loadOwned(ctx context.Context, op policy.Operation, id uuid.UUID, uid string) (*entity.Note, error) {
	note, err := c.store.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	if policy.Decide(op, note.OwnerId, uid) != policy.Allow {
		return nil, ErrNotOwner
	}
	return note, nil
}

func (c *Client) listFor(ctx context.Context, uid string) ([]*entity.Note, error) {
	notes, err := c.store.ListByOwner(ctx, uid)
	if err != nil {
		return nil, err
	}

	res := make([]*entity.Note, 0, len(notes))
	for _, note := range notes {
		if policy.Decide(policy.OpList, note.OwnerId, uid) != policy.Allow {
			logrus.Warnf("owner filter returned foreign note %s, dropping", note.Id)
			continue
		}
		res = append(res, note)
	}
	return res, nil
}

func (c *Client) watch(ctx context.Context, messages <-chan *message.Message, authChanges <-chan identity.AuthState) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-messages:
			if !ok {
				return
			}
			msg.Ack()

			var change dto.NoteChangedMessage
			if err := json.Unmarshal(msg.Payload, &change); err != nil {
				logrus.Warnf("malformed note-changed message %s: %v", msg.UUID, err)
				continue
			}

			state := c.session.Current()
			if state.State == identity.StatePresent && change.OwnerId == state.Uid {
				c.refresh(ctx, state.Uid)
			}

		case state, ok := <-authChanges:
			if !ok {
				return
			}
			switch state.State {
			case identity.StatePresent:
				c.refresh(ctx, state.Uid)
			case identity.StateAbsent:
				c.emit(nil)
			}
		}
	}
}

func (c *Client) refresh(ctx context.Context, uid string) {
	notes, err := c.listFor(ctx, uid)
	if err != nil {
		logrus.Warnf("refreshing listing for %s: %v", uid, err)
		return
	}
	c.emit(notes)
}

// emit keeps only the newest listing; a slow consumer sees the latest
// state, not a backlog.
func (c *Client) emit(notes []*entity.Note) {
	for {
		select {
		case c.refreshed <- notes:
			return
		default:
			select {
			case <-c.refreshed:
			default:
			}
		}
	}
}
