package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Atm is one ATM location record as served by GET /atms.
type Atm struct {
	Id            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	BranchCode    string  `json:"branchCode"`
	BranchManager string  `json:"branchManager"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Phone         string  `json:"phone"`
	WorkingHours  string  `json:"workingHours"`
}

// UnmarshalJSON accepts the id as either a string or a number, since
// json-server style endpoints hand out numeric ids.
func (a *Atm) UnmarshalJSON(data []byte) error {
	type plain Atm
	aux := struct {
		*plain
		Id json.RawMessage `json:"id"`
	}{plain: (*plain)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := decodeId(aux.Id)
	if err != nil {
		return err
	}
	a.Id = id
	return nil
}

func decodeId(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", err
		}
		return id, nil
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", fmt.Errorf("atm id must be a string or a number, got %s", raw)
	}
	return num.String(), nil
}

func (a Atm) Position() LatLng {
	return LatLng{Lat: a.Latitude, Lng: a.Longitude}
}

type CreateAtmRequest struct {
	Id            string  `json:"id" validate:"omitempty,max=64"`
	Name          string  `json:"name" validate:"required,max=255"`
	Address       string  `json:"address" validate:"max=512"`
	BranchCode    string  `json:"branchCode" validate:"max=64"`
	BranchManager string  `json:"branchManager" validate:"max=255"`
	Latitude      float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Phone         string  `json:"phone" validate:"max=64"`
	WorkingHours  string  `json:"workingHours" validate:"max=128"`
}

func (req CreateAtmRequest) Atm() Atm {
	return Atm{
		Id:            req.Id,
		Name:          req.Name,
		Address:       req.Address,
		BranchCode:    req.BranchCode,
		BranchManager: req.BranchManager,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Phone:         req.Phone,
		WorkingHours:  req.WorkingHours,
	}
}
