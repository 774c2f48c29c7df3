package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gatekeeper_backend/internals/constants"
	"gatekeeper_backend/internals/features/people/dto"
	"gatekeeper_backend/internals/features/people/model"
	"gatekeeper_backend/internals/features/people/repository"
	"gatekeeper_backend/internals/helpers"
	"gatekeeper_backend/internals/helpers/assets"
)

type PersonController struct {
	Repo   *repository.PersonRepository
	Assets *assets.Store
}

func NewPersonController(db *gorm.DB, store *assets.Store) *PersonController {
	return &PersonController{
		Repo:   repository.NewPersonRepository(db),
		Assets: store,
	}
}

// GET /api/a/people?q=&page=&per_page=
func (pc *PersonController) GetPeople(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	people, total, err := pc.Repo.List(c.UserContext(), c.Query("q"), paging.Offset, paging.Limit)
	if err != nil {
		log.Println("[ERROR] Failed to fetch people:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve people")
	}

	return helper.Success(c, "People fetched successfully", fiber.Map{
		"people":     people,
		"pagination": helper.BuildPagination(paging, total, len(people)),
	})
}

// GET /api/a/people/:id
func (pc *PersonController) GetPerson(c *fiber.Ctx) error {
	person, err := pc.Repo.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Person not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve person")
	}
	return helper.Success(c, "Person fetched successfully", person)
}

// POST /api/a/people takes a multipart form with an optional picture file
func (pc *PersonController) CreatePerson(c *fiber.Ctx) error {
	var req dto.CreatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	person := &model.PersonModel{
		BadgeCode:     req.BadgeCode,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		DisplayName:   req.DisplayName,
		Status:        req.Status,
		Role:          req.Role,
		Company:       req.Company,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		IDNumber:      req.IDNumber,
	}
	if req.RegisteredOn != "" {
		if d, err := time.Parse("2006-01-02", req.RegisteredOn); err == nil {
			person.RegisteredOn = datatypes.Date(d)
		}
	}
	if err := person.Validate(); err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation error", err.Error())
	}

	seq, err := pc.Repo.NextSequenceNo(c.UserContext())
	if err != nil {
		log.Println("[ERROR] Failed to allocate sequence number:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create person")
	}
	person.SequenceNo = seq

	if fh, err := c.FormFile("picture"); err == nil && fh != nil {
		ref, err := pc.Assets.SavePicture(fh)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid picture upload")
		}
		person.PictureRef = ref
	}

	qrRef, err := pc.Assets.RenderQR(person.BadgeCode)
	if err != nil {
		log.Println("[ERROR] Failed to render QR:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create person")
	}
	person.QRImageRef = qrRef

	if err := pc.Repo.Insert(c.UserContext(), person); err != nil {
		if errors.Is(err, repository.ErrDuplicateBadge) {
			return helper.Error(c, fiber.StatusConflict, "Badge code already exists")
		}
		log.Println("[ERROR] Failed to create person:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create person")
	}

	log.Printf("[SUCCESS] Person created: %s (%s)\n", person.DisplayName, person.BadgeCode)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Person added successfully", person)
}

// PUT /api/a/people/:id
func (pc *PersonController) UpdatePerson(c *fiber.Ctx) error {
	person, err := pc.Repo.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Person not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve person")
	}

	var req dto.UpdatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.FirstName != "" {
		person.FirstName = req.FirstName
	}
	if req.MiddleName != "" {
		person.MiddleName = req.MiddleName
	}
	if req.LastName != "" {
		person.LastName = req.LastName
	}
	if req.DisplayName != "" {
		person.DisplayName = req.DisplayName
	} else if req.FirstName != "" || req.LastName != "" {
		person.DisplayName = model.ComposeDisplayName(person.FirstName, person.MiddleName, person.LastName)
	}
	if req.Status != "" {
		person.Status = constants.NormalizeStatus(req.Status)
	}
	if req.Role != "" {
		person.Role = req.Role
	}
	if req.Company != "" {
		person.Company = req.Company
	}
	if req.Address != "" {
		person.Address = req.Address
	}
	if req.ContactNumber != "" {
		person.ContactNumber = req.ContactNumber
	}
	if req.IDNumber != "" {
		person.IDNumber = req.IDNumber
	}

	if fh, err := c.FormFile("picture"); err == nil && fh != nil {
		old := person.PictureRef
		ref, err := pc.Assets.SavePicture(fh)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid picture upload")
		}
		person.PictureRef = ref
		pc.Assets.Remove(old)
	}

	if err := pc.Repo.Update(c.UserContext(), person); err != nil {
		log.Println("[ERROR] Failed to update person:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update person")
	}

	log.Printf("[SUCCESS] Person updated: %s\n", person.BadgeCode)
	return helper.Success(c, "Person updated successfully", person)
}

// DELETE /api/a/people/:id removes owned image assets best-effort; historical
// ledger events keep their denormalized snapshot.
func (pc *PersonController) DeletePerson(c *fiber.Ctx) error {
	person, err := pc.Repo.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Person not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve person")
	}

	if err := pc.Repo.Delete(c.UserContext(), person); err != nil {
		log.Println("[ERROR] Failed to delete person:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete person")
	}

	pc.Assets.Remove(person.PictureRef)
	pc.Assets.Remove(person.QRImageRef)

	log.Printf("[SUCCESS] Person deleted: %s\n", person.BadgeCode)
	return helper.Success(c, "Person deleted successfully", nil)
}

// PATCH /api/a/people/:id/status/:status accepts canonical and legacy values
func (pc *PersonController) ChangeStatus(c *fiber.Ctx) error {
	raw := c.Params("status")
	if !constants.RecognizedStatus(raw) {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid status")
	}

	person, err := pc.Repo.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Person not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve person")
	}

	person.Status = constants.NormalizeStatus(raw)
	if err := pc.Repo.Update(c.UserContext(), person); err != nil {
		log.Println("[ERROR] Failed to change status:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to change status")
	}

	return helper.Success(c, "Status changed to "+person.Status, person)
}

// GET /api/a/stats
func (pc *PersonController) GetStats(c *fiber.Ctx) error {
	stats, err := pc.Repo.Stats(c.UserContext())
	if err != nil {
		log.Println("[ERROR] Failed to compute stats:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}
	return helper.Success(c, "Statistics fetched successfully", stats)
}
