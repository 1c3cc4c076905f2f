package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-learning-platform/internal/app"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
)

// explanationImageField is the multipart part carrying a question's
// explanation image.
const explanationImageField = "explanation_image"

func (h *Handler) listChapters(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	chapters, err := h.services.ContentService.ListChapters(r.Context(), caller.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, app.MsgChaptersListed, chapters)
}

func (h *Handler) listChaptersPaged(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.services.ContentService.ListChaptersPaged(r.Context(), caller.UserID, parsePageRequest(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, app.MsgChaptersListed, page)
}

func (h *Handler) listTopicsByChapter(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	chapterID, err := pathID(r, "chapterID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.services.ContentService.ListTopicsByChapter(r.Context(), caller.UserID, chapterID, parsePageRequest(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, app.MsgTopicsListed, page)
}

func (h *Handler) createChapter(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var input models.CreateChapterInput
	if err = decodeBody(r, &input); err != nil {
		h.fail(w, r, err)
		return
	}

	chapter, err := h.services.ContentService.CreateChapter(r.Context(), caller.UserID, input)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, app.MsgChapterCreated, chapter)
}

func (h *Handler) createTopic(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var input models.CreateTopicInput
	if err = decodeBody(r, &input); err != nil {
		h.fail(w, r, err)
		return
	}

	topic, err := h.services.ContentService.CreateTopic(r.Context(), caller.UserID, input)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, app.MsgTopicCreated, topic)
}

// createQuestion accepts either a JSON body or a multipart form with an
// optional explanation_image part.
func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var (
		input models.CreateQuestionInput
		image *models.UploadedFile
	)
	if isMultipart(r) {
		input, image, err = h.questionForm(w, r)
	} else {
		err = decodeBody(r, &input)
	}
	if err != nil {
		log.Err(err).Msg("invalid question payload")
		h.fail(w, r, err)
		return
	}

	question, err := h.services.ContentService.CreateQuestion(r.Context(), caller.UserID, input, image)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, app.MsgQuestionCreated, question)
}

func (h *Handler) setChapterProgress(w http.ResponseWriter, r *http.Request) {
	h.setProgress(w, r, "chapterID", h.services.ContentService.SetChapterProgress, app.MsgChapterProgressUpdated)
}

func (h *Handler) setTopicProgress(w http.ResponseWriter, r *http.Request) {
	h.setProgress(w, r, "topicID", h.services.ContentService.SetTopicProgress, app.MsgTopicProgressUpdated)
}

type progressSetter func(ctx context.Context, userID, itemID int64, completed bool) error

func (h *Handler) setProgress(w http.ResponseWriter, r *http.Request, param string, set progressSetter, message string) {
	caller, err := identity(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	itemID, err := pathID(r, param)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var input models.ProgressInput
	if err = decodeBody(r, &input); err != nil {
		h.fail(w, r, err)
		return
	}

	if err = set(r.Context(), caller.UserID, itemID, input.IsCompleted); err != nil {
		h.fail(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, message, input)
}

func (h *Handler) questionForm(w http.ResponseWriter, r *http.Request) (models.CreateQuestionInput, *models.UploadedFile, error) {
	if err := h.parseMultipart(w, r); err != nil {
		return models.CreateQuestionInput{}, nil, err
	}

	input := models.CreateQuestionInput{
		Title:       formString(r, "title"),
		Description: formString(r, "description"),
		Question:    models.Deref(formString(r, "question")),
		Explanation: formString(r, "explanation"),
	}

	var err error
	if input.SubtopicID, err = formInt64(r, "subtopic_id"); err != nil {
		return models.CreateQuestionInput{}, nil, err
	}
	if input.DifficultyID, err = formInt64(r, "difficulty_id"); err != nil {
		return models.CreateQuestionInput{}, nil, err
	}
	if input.TagID, err = formInt64(r, "tag_id"); err != nil {
		return models.CreateQuestionInput{}, nil, err
	}
	if input.TimeLimit, err = formInt(r, "time_limit"); err != nil {
		return models.CreateQuestionInput{}, nil, err
	}
	if input.IsActive, err = formBool(r, "is_active"); err != nil {
		return models.CreateQuestionInput{}, nil, err
	}
	typeID, err := formInt64(r, "type_id")
	if err != nil {
		return models.CreateQuestionInput{}, nil, err
	}
	if typeID != nil {
		input.TypeID = *typeID
	}

	image, err := formFile(r, explanationImageField)
	if err != nil {
		return models.CreateQuestionInput{}, nil, err
	}

	return input, image, nil
}
