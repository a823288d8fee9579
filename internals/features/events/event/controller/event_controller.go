package controller

import (
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventhub_backend/internals/features/events/event/dto"
	eventModel "eventhub_backend/internals/features/events/event/model"
	"eventhub_backend/internals/features/events/event/service"
	helper "eventhub_backend/internals/helpers"
	"eventhub_backend/internals/helpers/geocode"
	"eventhub_backend/internals/helpers/imagestore"
)

type locationNormalizer interface {
	Normalize(ctx context.Context, query string) (string, error)
}

// assembleTimeout covers the whole create transaction including the image
// uploads, which do not fit in the request-level 5s bound.
const assembleTimeout = 2 * time.Minute

type EventController struct {
	DB       *gorm.DB
	Geocoder locationNormalizer
	Store    imagestore.Store
}

func NewEventController(db *gorm.DB, geocoder locationNormalizer, store imagestore.Store) *EventController {
	return &EventController{DB: db, Geocoder: geocoder, Store: store}
}

/* ==========================
   CREATE
========================== */

// Create handles the full submission: info block, 1..N zone rows, 1..N image
// files. Field, cross-field and per-file errors are aggregated into one 422;
// persistence is all-or-nothing.
func (ec *EventController) Create(c *fiber.Ctx) error {
	organizerID, err := helper.CurrentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	req, fileHeaders, err := dto.ParseCreateEventForm(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form submission")
	}
	req.Normalize()

	fieldErrs := req.Validate(time.Now())
	ec.normalizeLocation(c, &req.EventInfoRequest, fieldErrs)

	uploads, err := readUploads(fileHeaders)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read uploaded files")
	}
	fieldErrs.Merge(service.CheckImages(uploads, service.MaxEventImageBytes))

	if !fieldErrs.Empty() {
		return helper.JsonValidationError(c, fieldErrs)
	}

	ev := req.ToModel(organizerID)

	// uploads outlive the 5s request bound; the assembly gets its own deadline
	ctx, cancel := context.WithTimeout(context.Background(), assembleTimeout)
	defer cancel()

	if err := service.CreateEvent(ctx, ec.DB, ec.Store, ev, uploads); err != nil {
		if reject, ok := service.IsReject(err); ok {
			fe := helper.FieldErrors{}
			fe.Add("images", reject.Error())
			return helper.JsonValidationError(c, fe)
		}
		log.Printf("create event: %v", err)
		fe := helper.FieldErrors{}
		fe.Add("images", "Something went wrong. Try again later.")
		return helper.JsonValidationError(c, fe)
	}

	return helper.JsonCreated(c, "Event created", dto.ToEventResponse(ev))
}

/* ==========================
   READ
========================== */

func (ec *EventController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ec.DB.WithContext(c.UserContext()).Model(&eventModel.EventModel{})
	if category := c.Query("category"); category != "" {
		if !eventModel.ValidCategory(category) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Select a valid event category.")
		}
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list events")
	}

	var events []eventModel.EventModel
	if err := q.Preload("PriceZones").Preload("Images").
		Order("date ASC, time ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&events).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list events")
	}

	return helper.JsonList(c, "Events fetched",
		dto.ToEventResponses(events),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

func (ec *EventController) Get(c *fiber.Ctx) error {
	ev, err := ec.loadEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Event fetched", dto.ToEventResponse(ev))
}

/* ==========================
   UPDATE / DELETE (owner only)
========================== */

func (ec *EventController) Update(c *fiber.Ctx) error {
	ev, err := ec.loadOwnedEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	fieldErrs := req.Validate(time.Now())
	ec.normalizeLocation(c, &req.EventInfoRequest, fieldErrs)
	if !fieldErrs.Empty() {
		return helper.JsonValidationError(c, fieldErrs)
	}

	req.ApplyToModel(ev)
	if err := ec.DB.WithContext(c.UserContext()).Save(ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}

	return helper.JsonUpdated(c, "Event updated", dto.ToEventResponse(ev))
}

func (ec *EventController) Delete(c *fiber.Ctx) error {
	ev, err := ec.loadOwnedEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := service.DeleteEvent(c.UserContext(), ec.DB, ec.Store, ev); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete event")
	}
	return helper.JsonDeleted(c, "Event deleted")
}

/* ==========================
   helpers
========================== */

// normalizeLocation swaps the free-text location for the provider's canonical
// display name; "not found" and "unavailable" surface differently but both
// land on the location field.
func (ec *EventController) normalizeLocation(c *fiber.Ctx, info *dto.EventInfoRequest, fe helper.FieldErrors) {
	if info.Location == "" || fe["location"] != nil {
		return
	}
	normalized, err := ec.Geocoder.Normalize(c.UserContext(), info.Location)
	switch {
	case errors.Is(err, geocode.ErrNotFound):
		fe.Add("location", "Location not found. Please enter a valid place.")
	case err != nil:
		log.Printf("geocode error: %v", err)
		fe.Add("location", "Failed to validate location. Try again later.")
	default:
		info.Location = normalized
	}
}

func (ec *EventController) loadEvent(c *fiber.Ctx) (*eventModel.EventModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
	}
	var ev eventModel.EventModel
	if err := ec.DB.WithContext(c.UserContext()).
		Preload("PriceZones").Preload("Images").
		First(&ev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Event not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load event")
	}
	return &ev, nil
}

func (ec *EventController) loadOwnedEvent(c *fiber.Ctx) (*eventModel.EventModel, error) {
	userID, err := helper.CurrentUserID(c)
	if err != nil {
		return nil, err
	}
	ev, err := ec.loadEvent(c)
	if err != nil {
		return nil, err
	}
	isStaff, _ := c.Locals("is_staff").(bool)
	if ev.OrganizerID != userID && !isStaff {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only the organizer can modify this event")
	}
	return ev, nil
}

func readUploads(fileHeaders []*multipart.FileHeader) ([]service.ImageUpload, error) {
	uploads := make([]service.ImageUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		src, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, service.ImageUpload{Filename: fh.Filename, Data: data})
	}
	return uploads, nil
}
