package httptransport

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	peoplemodels "northpole/internal/people/models"
	wishmodels "northpole/internal/wish/models"
	dErrors "northpole/pkg/domain-errors"
	"northpole/pkg/validation"
)

// locationDTO mirrors the addressLocation JSON object.
type locationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// registerPersonRequest is the POST /api/people payload. Identity and version
// are server-owned; their presence in the payload is rejected.
type registerPersonRequest struct {
	ID              *json.RawMessage `json:"id"`
	Version         *json.RawMessage `json:"version"`
	FirstName       *string          `json:"firstName" validate:"required"`
	LastName        *string          `json:"lastName" validate:"required"`
	DateOfBirth     *string          `json:"dateOfBirth" validate:"required"`
	AddressLocation *locationDTO     `json:"addressLocation"`
	Behavior        *string          `json:"behavior" validate:"required"`
}

// updatePersonRequest is the PUT /api/people payload. It must carry both the
// identity and the version token the client last read.
type updatePersonRequest struct {
	ID              *int         `json:"id" validate:"required"`
	FirstName       *string      `json:"firstName" validate:"required"`
	LastName        *string      `json:"lastName" validate:"required"`
	DateOfBirth     *string      `json:"dateOfBirth" validate:"required"`
	AddressLocation *locationDTO `json:"addressLocation"`
	Behavior        *string      `json:"behavior" validate:"required"`
	Version         *int         `json:"version" validate:"required"`
}

// registerWishRequest is the POST /api/wish payload.
type registerWishRequest struct {
	ProductName   *string      `json:"productName" validate:"required"`
	Quantity      *json.Number `json:"quantity" validate:"required"`
	BeneficiaryID *int         `json:"beneficiaryId" validate:"required"`
}

// replaceWishRequest is the PUT /api/wishreplace payload. The id names the
// replacement wish; idOfWishToBeReplaced names the victim.
type replaceWishRequest struct {
	ID                   *string      `json:"id" validate:"required"`
	ProductName          *string      `json:"productName" validate:"required"`
	Quantity             *json.Number `json:"quantity" validate:"required"`
	BeneficiaryID        *int         `json:"beneficiaryId" validate:"required"`
	IDOfWishToBeReplaced *string      `json:"idOfWishToBeReplaced" validate:"required"`
}

// fulfillWishRequest is the POST /api/wishfulfill payload.
type fulfillWishRequest struct {
	ID *string `json:"id" validate:"required"`
}

func decode(body io.Reader, into any) error {
	if err := json.NewDecoder(body).Decode(into); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid json")
	}
	return nil
}

func parseRegisterPerson(body io.Reader) (peoplemodels.Person, error) {
	var req registerPersonRequest
	if err := decode(body, &req); err != nil {
		return peoplemodels.Person{}, err
	}
	if req.ID != nil || req.Version != nil {
		return peoplemodels.Person{}, dErrors.New(dErrors.CodeInvalidInput,
			"request body should not contain id or version for registration")
	}
	if err := validation.Validate(req); err != nil {
		return peoplemodels.Person{}, err
	}
	return buildPerson(req.FirstName, req.LastName, req.DateOfBirth, req.AddressLocation, req.Behavior)
}

func parseUpdatePerson(body io.Reader) (peoplemodels.Person, error) {
	var req updatePersonRequest
	if err := decode(body, &req); err != nil {
		return peoplemodels.Person{}, err
	}
	if err := validation.Validate(req); err != nil {
		return peoplemodels.Person{}, err
	}
	person, err := buildPerson(req.FirstName, req.LastName, req.DateOfBirth, req.AddressLocation, req.Behavior)
	if err != nil {
		return peoplemodels.Person{}, err
	}
	person.ID = *req.ID
	person.Version = *req.Version
	return person, nil
}

func buildPerson(firstName, lastName, dateOfBirth *string, location *locationDTO, behavior *string) (peoplemodels.Person, error) {
	dob, err := time.Parse(peoplemodels.DateLayout, *dateOfBirth)
	if err != nil {
		return peoplemodels.Person{}, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("dateOfBirth must be a %s date", "YYYY-MM-DD"))
	}

	behaviorValue, err := peoplemodels.ParseBehavior(*behavior)
	if err != nil {
		return peoplemodels.Person{}, err
	}

	person := peoplemodels.Person{
		FirstName:   *firstName,
		LastName:    *lastName,
		DateOfBirth: dob,
		Behavior:    behaviorValue,
	}
	if location != nil {
		validated, err := peoplemodels.NewLocation(location.Latitude, location.Longitude)
		if err != nil {
			return peoplemodels.Person{}, err
		}
		person.AddressLocation = &validated
	}
	return person, nil
}

// parseQuantity truncates integer or decimal JSON numbers and rejects
// negative quantities.
func parseQuantity(raw json.Number) (int, error) {
	value, err := raw.Float64()
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "quantity must be a number")
	}
	quantity := int(value)
	if quantity < 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "wish quantity cannot be negative")
	}
	return quantity, nil
}

func parseRegisterWish(body io.Reader) (productName string, quantity, beneficiaryID int, err error) {
	var req registerWishRequest
	if err := decode(body, &req); err != nil {
		return "", 0, 0, err
	}
	if err := validation.Validate(req); err != nil {
		return "", 0, 0, err
	}
	if *req.ProductName == "" {
		return "", 0, 0, dErrors.New(dErrors.CodeInvalidInput, "wish productName cannot be empty")
	}
	quantity, err = parseQuantity(*req.Quantity)
	if err != nil {
		return "", 0, 0, err
	}
	return *req.ProductName, quantity, *req.BeneficiaryID, nil
}

func parseReplaceWish(body io.Reader) (wishmodels.Wish, string, error) {
	var req replaceWishRequest
	if err := decode(body, &req); err != nil {
		return wishmodels.Wish{}, "", err
	}
	if err := validation.Validate(req); err != nil {
		return wishmodels.Wish{}, "", err
	}
	if *req.ProductName == "" {
		return wishmodels.Wish{}, "", dErrors.New(dErrors.CodeInvalidInput, "wish productName cannot be empty")
	}
	quantity, err := parseQuantity(*req.Quantity)
	if err != nil {
		return wishmodels.Wish{}, "", err
	}
	wish := wishmodels.Wish{
		ID:            *req.ID,
		ProductName:   *req.ProductName,
		Quantity:      quantity,
		BeneficiaryID: *req.BeneficiaryID,
	}
	return wish, *req.IDOfWishToBeReplaced, nil
}

func parseFulfillWish(body io.Reader) (string, error) {
	var req fulfillWishRequest
	if err := decode(body, &req); err != nil {
		return "", err
	}
	if err := validation.Validate(req); err != nil {
		return "", err
	}
	return *req.ID, nil
}

// personResponse is the wire form of a person.
type personResponse struct {
	ID                 int          `json:"id"`
	FirstName          string       `json:"firstName"`
	LastName           string       `json:"lastName"`
	DateOfBirth        string       `json:"dateOfBirth"`
	TimeOfRegistration string       `json:"timeOfRegistration"`
	AddressLocation    *locationDTO `json:"addressLocation,omitempty"`
	Behavior           string       `json:"behavior"`
	Version            int          `json:"version"`
}

func toPersonResponse(person peoplemodels.Person) personResponse {
	resp := personResponse{
		ID:                 person.ID,
		FirstName:          person.FirstName,
		LastName:           person.LastName,
		DateOfBirth:        person.DateOfBirth.Format(peoplemodels.DateLayout),
		TimeOfRegistration: person.TimeOfRegistration.Format(peoplemodels.LocalDateTimeLayout),
		Behavior:           string(person.Behavior),
		Version:            person.Version,
	}
	if person.AddressLocation != nil {
		resp.AddressLocation = &locationDTO{
			Latitude:  person.AddressLocation.Latitude,
			Longitude: person.AddressLocation.Longitude,
		}
	}
	return resp
}

func toPersonResponses(people []peoplemodels.Person) []personResponse {
	responses := make([]personResponse, 0, len(people))
	for _, person := range people {
		responses = append(responses, toPersonResponse(person))
	}
	return responses
}

// wishResponse is the wire form of a wish.
type wishResponse struct {
	ID            string `json:"id"`
	ProductName   string `json:"productName"`
	Quantity      int    `json:"quantity"`
	BeneficiaryID int    `json:"beneficiaryId"`
}

func toWishResponse(wish wishmodels.Wish) wishResponse {
	return wishResponse{
		ID:            wish.ID,
		ProductName:   wish.ProductName,
		Quantity:      wish.Quantity,
		BeneficiaryID: wish.BeneficiaryID,
	}
}

func toWishResponses(wishes []wishmodels.Wish) []wishResponse {
	responses := make([]wishResponse, 0, len(wishes))
	for _, wish := range wishes {
		responses = append(responses, toWishResponse(wish))
	}
	return responses
}

// replaceWishResponse pairs the removed wish with its replacement.
type replaceWishResponse struct {
	DeletedWish wishResponse `json:"deletedWish"`
	NewWish     wishResponse `json:"newWish"`
}
