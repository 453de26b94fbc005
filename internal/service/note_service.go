package service

import (
	"context"
	"encoding/json"
	"strings"

	"thinkpad-notes-be/internal/constant"
	"thinkpad-notes-be/internal/dto"
	"thinkpad-notes-be/internal/entity"
	"thinkpad-notes-be/internal/policy"
	"thinkpad-notes-be/internal/pkg/serverutils"
	"thinkpad-notes-be/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// INoteService is the server-side note gateway. Every method takes the
// verified caller identity explicitly; there is no ambient current user.
type INoteService interface {
	List(ctx context.Context, callerId string) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, id uuid.UUID, callerId string) (*dto.NoteResponse, error)
	Create(ctx context.Context, callerId string, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, id uuid.UUID, callerId string, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID, callerId string) error
}

type noteService struct {
	noteRepository   repository.INoteRepository
	publisherService IPublisherService
}

func NewNoteService(
	noteRepository repository.INoteRepository,
	publisherService IPublisherService,
) INoteService {
	return &noteService{
		noteRepository:   noteRepository,
		publisherService: publisherService,
	}
}

func (s *noteService) List(ctx context.Context, callerId string) ([]*dto.NoteResponse, error) {
	if callerId == "" {
		return nil, serverutils.ErrUnauthorized
	}

	notes, err := s.noteRepository.ListByOwner(ctx, callerId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		// re-check on top of the query filter; a mismatch here means the
		// filter layer is broken and the record must not leave the server
		if policy.Decide(policy.OpList, note.OwnerId, callerId) != policy.Allow {
			logrus.Warnf("list query returned foreign note %s, dropping", note.Id)
			continue
		}
		res = append(res, toNoteResponse(note))
	}
	return res, nil
}

func (s *noteService) Show(ctx context.Context, id uuid.UUID, callerId string) (*dto.NoteResponse, error) {
	note, err := s.loadOwned(ctx, policy.OpRead, id, callerId)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (s *noteService) Create(ctx context.Context, callerId string, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if policy.Decide(policy.OpCreate, "", callerId) != policy.Allow {
		return nil, serverutils.ErrUnauthorized
	}
	if err := requireFields(req.Title, req.Content); err != nil {
		return nil, err
	}

	// ownership is established in the same write that creates the record,
	// always from the verified identity
	note := entity.Note{
		Id:      uuid.New(),
		OwnerId: callerId,
		Title:   req.Title,
		Content: req.Content,
	}

	if err := s.noteRepository.Create(ctx, &note); err != nil {
		return nil, err
	}

	s.publishChange(ctx, &note, constant.NoteActionCreated)
	return toNoteResponse(&note), nil
}

func (s *noteService) Update(ctx context.Context, id uuid.UUID, callerId string, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if err := requireFields(req.Title, req.Content); err != nil {
		return nil, err
	}

	note, err := s.loadOwned(ctx, policy.OpUpdate, id, callerId)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	note.Content = req.Content
	if err := s.noteRepository.Update(ctx, note); err != nil {
		return nil, err
	}

	s.publishChange(ctx, note, constant.NoteActionUpdated)
	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, id uuid.UUID, callerId string) error {
	note, err := s.loadOwned(ctx, policy.OpDelete, id, callerId)
	if err != nil {
		return err
	}

	if err := s.noteRepository.Delete(ctx, id, callerId); err != nil {
		return err
	}

	s.publishChange(ctx, note, constant.NoteActionDeleted)
	return nil
}

// loadOwned fetches the record and applies the ownership policy. Existence
// is decided before ownership, so a non-owner learns only that the id
// exists, never its content.
func (s *noteService) loadOwned(ctx context.Context, op policy.Operation, id uuid.UUID, callerId string) (*entity.Note, error) {
	note, err := s.noteRepository.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	if policy.Decide(op, note.OwnerId, callerId) != policy.Allow {
		return nil, serverutils.ErrForbidden
	}
	return note, nil
}

// requireFields backs up the transport-level validator so that no blank
// title or content reaches the store regardless of entry point.
func requireFields(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return serverutils.ErrBadRequest
	}
	return nil
}

func (s *noteService) publishChange(ctx context.Context, note *entity.Note, action string) {
	payload, err := json.Marshal(dto.NoteChangedMessage{
		NoteId:  note.Id,
		OwnerId: note.OwnerId,
		Action:  action,
	})
	if err == nil {
		err = s.publisherService.Publish(ctx, payload)
	}
	if err != nil {
		// the write already succeeded; a lost refresh event is not worth
		// failing the request over
		logrus.Warnf("publishing note-changed event for %s: %v", note.Id, err)
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		UserId:    note.OwnerId,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
