package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanRef(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    PlanRef
		wantErr bool
	}{
		{name: "bare plan id", in: "plan-1", want: PlanRef{PlanID: "plan-1"}},
		{name: "with variant", in: "plan-1|variant:v2", want: PlanRef{PlanID: "plan-1", VariantID: "v2"}},
		{name: "surrounding spaces", in: "  plan-1 |variant: v2 ", want: PlanRef{PlanID: "plan-1", VariantID: "v2"}},
		{name: "empty", in: "", wantErr: true},
		{name: "missing plan", in: "|variant:v2", wantErr: true},
		{name: "missing variant", in: "plan-1|variant:", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePlanRef(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidPlanRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPlanRef_StringRoundTrip(t *testing.T) {
	for _, s := range []string{"p1", "p1|variant:v1"} {
		ref, err := ParsePlanRef(s)
		require.NoError(t, err)
		assert.Equal(t, s, ref.String())
	}
}

func TestPlanRef_UnmarshalJSON_AcceptsLegacyStrings(t *testing.T) {
	var refs []PlanRef
	raw := `["p1", "p2|variant:v9", {"planId":"p3","variantId":"v3"}, {"planId":"p4"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &refs))

	assert.Equal(t, []PlanRef{
		{PlanID: "p1"},
		{PlanID: "p2", VariantID: "v9"},
		{PlanID: "p3", VariantID: "v3"},
		{PlanID: "p4"},
	}, refs)
}

func TestPlanRef_UnmarshalJSON_RejectsEmptyPlan(t *testing.T) {
	var ref PlanRef
	require.Error(t, json.Unmarshal([]byte(`{"variantId":"v1"}`), &ref))
	require.Error(t, json.Unmarshal([]byte(`""`), &ref))
}

func TestDedupPlanRefs(t *testing.T) {
	in := []PlanRef{
		{PlanID: " p1 "},
		{PlanID: "p1"},
		{PlanID: "p1", VariantID: "v1"},
		{PlanID: ""},
		{PlanID: "p2"},
	}
	assert.Equal(t, []PlanRef{
		{PlanID: "p1"},
		{PlanID: "p1", VariantID: "v1"},
		{PlanID: "p2"},
	}, DedupPlanRefs(in))
}
