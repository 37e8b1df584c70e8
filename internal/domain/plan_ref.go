package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// variantSeparator joins plan and variant ids in the legacy string encoding.
const variantSeparator = "|variant:"

var ErrInvalidPlanRef = errors.New("invalid workout plan reference")

// PlanRef points a user at a workout plan and, optionally, at one of the
// plan's variants. Variants are never assigned on their own.
type PlanRef struct {
	PlanID    string `bson:"planId" json:"planId"`
	VariantID string `bson:"variantId,omitempty" json:"variantId,omitempty"`
}

// ParsePlanRef decodes "planId" or "planId|variant:variantId".
func ParsePlanRef(s string) (PlanRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PlanRef{}, ErrInvalidPlanRef
	}
	planID, variantID, found := strings.Cut(s, variantSeparator)
	planID = strings.TrimSpace(planID)
	variantID = strings.TrimSpace(variantID)
	if planID == "" || (found && variantID == "") {
		return PlanRef{}, ErrInvalidPlanRef
	}
	return PlanRef{PlanID: planID, VariantID: variantID}, nil
}

// String re-encodes the reference in the legacy form.
func (r PlanRef) String() string {
	if r.VariantID == "" {
		return r.PlanID
	}
	return r.PlanID + variantSeparator + r.VariantID
}

// HasVariant reports whether a specific variant was assigned.
func (r PlanRef) HasVariant() bool {
	return r.VariantID != ""
}

// UnmarshalJSON accepts both the object form and the legacy string form.
func (r *PlanRef) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		parsed, err := ParsePlanRef(legacy)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}

	type plain PlanRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if strings.TrimSpace(p.PlanID) == "" {
		return ErrInvalidPlanRef
	}
	*r = PlanRef(p)
	return nil
}

// DedupPlanRefs trims ids and drops empty or repeated references, keeping
// the first occurrence order.
func DedupPlanRefs(refs []PlanRef) []PlanRef {
	out := make([]PlanRef, 0, len(refs))
	seen := make(map[PlanRef]struct{}, len(refs))
	for _, ref := range refs {
		ref.PlanID = strings.TrimSpace(ref.PlanID)
		ref.VariantID = strings.TrimSpace(ref.VariantID)
		if ref.PlanID == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
