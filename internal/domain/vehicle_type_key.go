package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// VehicleTypeKey identifies vehicles that are interchangeable for insertion purposes:
// same type, start/end location, operating window, skills, return-to-depot flag and
// maximum route duration. The struct is comparable and can be used as a map key.
type VehicleTypeKey struct {
	TypeID           string
	StartLocationID  string
	EndLocationID    string
	EarliestStart    float64
	LatestEnd        float64
	Skills           string
	ReturnToDepot    bool
	HasMaxDuration   bool
	MaxRouteDuration float64
}

func NewVehicleTypeKey(
	typeID string,
	start Location,
	end Location,
	earliestStart float64,
	latestEnd float64,
	skills Skills,
	returnToDepot bool,
	maxRouteDuration *float64,
) VehicleTypeKey {
	k := VehicleTypeKey{
		TypeID:          typeID,
		StartLocationID: start.ID,
		EndLocationID:   end.ID,
		EarliestStart:   earliestStart,
		LatestEnd:       latestEnd,
		Skills:          skills.String(),
		ReturnToDepot:   returnToDepot,
	}
	if maxRouteDuration != nil {
		k.HasMaxDuration = true
		k.MaxRouteDuration = *maxRouteDuration
	}
	return k
}

func (k VehicleTypeKey) Equal(other VehicleTypeKey) bool { return k == other }

// Hash is consistent with Equal.
func (k VehicleTypeKey) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(k.TypeID)
	_, _ = d.WriteString("\x00" + k.StartLocationID)
	_, _ = d.WriteString("\x00" + k.EndLocationID)
	_, _ = d.WriteString("\x00" + formatFloat(k.EarliestStart))
	_, _ = d.WriteString("\x00" + formatFloat(k.LatestEnd))
	_, _ = d.WriteString("\x00" + k.Skills)
	_, _ = d.WriteString("\x00" + strconv.FormatBool(k.ReturnToDepot))
	if k.HasMaxDuration {
		_, _ = d.WriteString("\x00" + formatFloat(k.MaxRouteDuration))
	}
	return d.Sum64()
}

// String renders every field compared by Equal as type_start_end_earliest_latest_[skills],
// followed by "_open" when the vehicle does not return to the depot and "_max<d>" for
// a route duration limit.
func (k VehicleTypeKey) String() string {
	s := k.TypeID
	if k.StartLocationID != "" {
		s += "_" + k.StartLocationID
	}
	if k.EndLocationID != "" {
		s += "_" + k.EndLocationID
	}
	s += "_" + strconv.FormatFloat(k.EarliestStart, 'f', -1, 64) + "_" + strconv.FormatFloat(k.LatestEnd, 'f', -1, 64)
	s += "_[" + k.Skills + "]"
	if !k.ReturnToDepot {
		s += "_open"
	}
	if k.HasMaxDuration {
		s += "_max" + strconv.FormatFloat(k.MaxRouteDuration, 'f', -1, 64)
	}
	return s
}

// formatFloat folds -0 into 0 so Hash agrees with ==.
func formatFloat(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
