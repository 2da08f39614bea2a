package content

import (
	"errors"
	"testing"
)

func TestSetField(t *testing.T) {
	t.Parallel()

	base := Default()

	tests := []struct {
		name    string
		path    string
		value   string
		wantErr error
	}{
		{name: "meta title", path: PathBrochureTitle, value: "Skyline Towers"},
		{name: "cover title", path: PathMainTitle, value: "New Title"},
		{name: "image cleared", path: PathBuildingImage, value: ""},
		{name: "legal disclosure", path: PathLegalDisclosure, value: "Subject to change."},
		{name: "unknown path", path: "page1.nope", value: "x", wantErr: ErrUnknownField},
		{name: "list path is not scalar", path: PathConnectivityHealthcareItems, value: "x", wantErr: ErrUnknownField},
		{name: "empty path", path: "", value: "x", wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := base.SetField(tt.path, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			v, err := got.Field(tt.path)
			if err != nil {
				t.Fatalf("Field() error: %v", err)
			}
			if v != tt.value {
				t.Errorf("Field(%q) = %q, want %q", tt.path, v, tt.value)
			}
		})
	}
}

func TestSetField_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := Default()
	before := base.Page1.MainTitle

	updated, err := base.SetField(PathMainTitle, "Changed")
	if err != nil {
		t.Fatal(err)
	}
	if base.Page1.MainTitle != before {
		t.Errorf("receiver mutated: %q", base.Page1.MainTitle)
	}
	if updated.Page1.MainTitle != "Changed" {
		t.Errorf("MainTitle = %q", updated.Page1.MainTitle)
	}

	updated.Page3.Amenities[0].Text = "mutated through copy"
	if base.Page3.Amenities[0].Text == "mutated through copy" {
		t.Error("amenity slice shared between snapshots")
	}
}

func TestFields_AllAddressable(t *testing.T) {
	t.Parallel()

	b := Default()
	for _, path := range Fields() {
		if _, err := b.Field(path); err != nil {
			t.Errorf("Field(%q) error: %v", path, err)
		}
	}
	if len(ListFields()) != 4 {
		t.Errorf("ListFields() = %v, want 4 entries", ListFields())
	}
}

func TestIsImageField(t *testing.T) {
	t.Parallel()

	if !IsImageField(PathMasterPlanImage) {
		t.Error("master plan image should be an image field")
	}
	if IsImageField(PathMainTitle) {
		t.Error("main title should not be an image field")
	}
}

func TestListOperations(t *testing.T) {
	t.Parallel()

	base := Default()
	path := PathConnectivityMajorRoadsItems
	n := len(base.Page2.ConnectivityMajorRoadsItems)

	t.Run("append", func(t *testing.T) {
		t.Parallel()

		got, err := base.AppendListItem(path, "Ring Road - 4 min drive")
		if err != nil {
			t.Fatal(err)
		}
		items, _ := got.List(path)
		if len(items) != n+1 || items[n] != "Ring Road - 4 min drive" {
			t.Errorf("items = %v", items)
		}
		if len(base.Page2.ConnectivityMajorRoadsItems) != n {
			t.Error("receiver mutated")
		}
	})

	t.Run("set", func(t *testing.T) {
		t.Parallel()

		got, err := base.SetListItem(path, 1, "Tunnel")
		if err != nil {
			t.Fatal(err)
		}
		if got.Page2.ConnectivityMajorRoadsItems[1] != "Tunnel" {
			t.Errorf("items = %v", got.Page2.ConnectivityMajorRoadsItems)
		}
		if base.Page2.ConnectivityMajorRoadsItems[1] == "Tunnel" {
			t.Error("receiver mutated")
		}
	})

	t.Run("remove keeps order", func(t *testing.T) {
		t.Parallel()

		got, err := base.RemoveListItem(path, 0)
		if err != nil {
			t.Fatal(err)
		}
		want := base.Page2.ConnectivityMajorRoadsItems[1:]
		if len(got.Page2.ConnectivityMajorRoadsItems) != len(want) {
			t.Fatalf("items = %v", got.Page2.ConnectivityMajorRoadsItems)
		}
		for i := range want {
			if got.Page2.ConnectivityMajorRoadsItems[i] != want[i] {
				t.Errorf("item %d = %q, want %q", i, got.Page2.ConnectivityMajorRoadsItems[i], want[i])
			}
		}
		if len(base.Page2.ConnectivityMajorRoadsItems) != n {
			t.Error("receiver mutated")
		}
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		for _, idx := range []int{-1, n} {
			if _, err := base.SetListItem(path, idx, "x"); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("SetListItem(%d) error = %v", idx, err)
			}
			if _, err := base.RemoveListItem(path, idx); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("RemoveListItem(%d) error = %v", idx, err)
			}
		}
	})

	t.Run("unknown list", func(t *testing.T) {
		t.Parallel()

		if _, err := base.AppendListItem(PathMainTitle, "x"); !errors.Is(err, ErrUnknownField) {
			t.Errorf("expected ErrUnknownField, got %v", err)
		}
	})
}
