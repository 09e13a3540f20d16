package address

import "testing"

func TestParseComponents(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   FormData
		wantOK bool
	}{
		{
			name:  "well formed",
			input: "123 Main St, Springfield, IL 62704",
			want: FormData{
				StreetAddress: "123 Main St",
				City:          "Springfield",
				State:         "IL",
				ZipCode:       "62704",
				FullAddress:   "123 Main St, Springfield, IL 62704",
			},
			wantOK: true,
		},
		{
			name:  "missing state",
			input: "123 Main St, Springfield",
			want: FormData{
				StreetAddress: "123 Main St",
				City:          "Springfield",
				FullAddress:   "123 Main St, Springfield",
			},
			wantOK: true,
		},
		{
			name:  "messy spacing and zip+4",
			input: "  456  Oak Ave ,Portland ,  OR   97232-1234 ",
			want: FormData{
				StreetAddress: "456 Oak Ave",
				City:          "Portland",
				State:         "OR",
				ZipCode:       "97232",
				FullAddress:   "456 Oak Ave, Portland, OR 97232-1234",
			},
			wantOK: true,
		},
		{
			name:  "directional prefix is not a state",
			input: "12 NE 5th Ave, Portland, OR 97232",
			want: FormData{
				StreetAddress: "12 NE 5th Ave",
				City:          "Portland",
				State:         "OR",
				ZipCode:       "97232",
				FullAddress:   "12 NE 5th Ave, Portland, OR 97232",
			},
			wantOK: true,
		},
		{
			name:  "full state name",
			input: "9 Elm Rd, Charleston, West Virginia 25301",
			want: FormData{
				StreetAddress: "9 Elm Rd",
				City:          "Charleston",
				State:         "WV",
				ZipCode:       "25301",
				FullAddress:   "9 Elm Rd, Charleston, West Virginia 25301",
			},
			wantOK: true,
		},
		{
			name:  "no commas",
			input: "77 Pine St Austin TX 78701",
			want: FormData{
				StreetAddress: "77 Pine St",
				City:          "Austin",
				State:         "TX",
				ZipCode:       "78701",
				FullAddress:   "77 Pine St Austin TX 78701",
			},
			wantOK: true,
		},
		{
			name:  "five digit house number without zip",
			input: "12345 Lake Shore Dr, Chicago, IL",
			want: FormData{
				StreetAddress: "12345 Lake Shore Dr",
				City:          "Chicago",
				State:         "IL",
				FullAddress:   "12345 Lake Shore Dr, Chicago, IL",
			},
			wantOK: true,
		},
		{
			name:  "last zip wins",
			input: "10001 Broadway, New York, NY 10025",
			want: FormData{
				StreetAddress: "10001 Broadway",
				City:          "New York",
				State:         "NY",
				ZipCode:       "10025",
				FullAddress:   "10001 Broadway, New York, NY 10025",
			},
			wantOK: true,
		},
		{
			name:  "state is the only segment after the street",
			input: "123 Main St, Washington",
			want: FormData{
				StreetAddress: "123 Main St",
				State:         "WA",
				FullAddress:   "123 Main St, Washington",
			},
			wantOK: true,
		},
		{
			name:  "city and state without street",
			input: "Springfield, IL 62704",
			want: FormData{
				City:        "Springfield",
				State:       "IL",
				ZipCode:     "62704",
				FullAddress: "Springfield, IL 62704",
			},
			wantOK: true,
		},
		{
			name:  "nothing derivable",
			input: "the blue house",
			want: FormData{
				StreetAddress: "the blue house",
				FullAddress:   "the blue house",
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseComponents(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseComponentsEmptyInput(t *testing.T) {
	got, ok := ParseComponents("   ")
	if ok {
		t.Fatal("expected empty input to be unparsed")
	}
	if got.StreetAddress != "" || got.FullAddress != "" {
		t.Fatalf("expected empty record, got %+v", got)
	}
}

func TestWithFieldRecomposesFullAddress(t *testing.T) {
	form, _ := ParseComponents("123 Main St, Springfield, IL 62704")

	edited := form.WithField(FieldCity, "Chatham")
	if edited.City != "Chatham" {
		t.Fatalf("expected city to change, got %q", edited.City)
	}
	if edited.FullAddress != "123 Main St, Chatham, IL 62704" {
		t.Fatalf("unexpected full address %q", edited.FullAddress)
	}
	if form.City != "Springfield" {
		t.Fatal("original record must not change")
	}

	edited = edited.WithField(FieldState, "missouri")
	if edited.State != "MO" {
		t.Fatalf("expected state name to convert to MO, got %q", edited.State)
	}

	unchanged := edited.WithField("country", "CA")
	if unchanged != edited {
		t.Fatal("unknown field must be ignored")
	}
}

func TestStateCode(t *testing.T) {
	cases := map[string]string{
		"IL":                   "IL",
		"il":                   "IL",
		"Illinois":             "IL",
		"district of columbia": "DC",
	}
	for input, want := range cases {
		got, ok := StateCode(input)
		if !ok || got != want {
			t.Fatalf("StateCode(%q) = %q, %v; want %q", input, got, ok, want)
		}
	}
	if _, ok := StateCode("Ontario"); ok {
		t.Fatal("expected unknown state name to fail")
	}
	if IsStateCode("in") {
		t.Fatal("state code check must be case-sensitive")
	}
}

func TestFromComponents(t *testing.T) {
	t.Run("complete components", func(t *testing.T) {
		got, ok := FromComponents(Components{
			HouseNumber: "1600",
			Road:        "Pennsylvania Avenue NW",
			City:        "Washington",
			State:       "District of Columbia",
			Postcode:    "20500",
		}, "White House, 1600, Pennsylvania Avenue NW, Washington, District of Columbia, 20500, United States")
		if !ok {
			t.Fatal("expected components to parse")
		}
		want := FormData{
			StreetAddress: "1600 Pennsylvania Avenue NW",
			City:          "Washington",
			State:         "DC",
			ZipCode:       "20500",
			FullAddress:   "1600 Pennsylvania Avenue NW, Washington, DC 20500",
		}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})

	t.Run("town and zip+4", func(t *testing.T) {
		got, _ := FromComponents(Components{
			Road:     "Route 9",
			Town:     "Woodstock",
			State:    "Vermont",
			Postcode: "05091-1234",
		}, "")
		if got.City != "Woodstock" || got.State != "VT" || got.ZipCode != "05091" {
			t.Fatalf("unexpected result %+v", got)
		}
	})

	t.Run("missing fields back-filled from display name", func(t *testing.T) {
		got, ok := FromComponents(Components{Road: "Main St"}, "123 Main St, Springfield, IL 62704")
		if !ok {
			t.Fatal("expected back-filled parse")
		}
		if got.StreetAddress != "Main St" || got.City != "Springfield" || got.State != "IL" || got.ZipCode != "62704" {
			t.Fatalf("unexpected result %+v", got)
		}
	})
}

func TestComposeSkipsEmptyParts(t *testing.T) {
	if got := Compose("", "Springfield", "IL", ""); got != "Springfield, IL" {
		t.Fatalf("unexpected compose result %q", got)
	}
	if got := Compose("", "", "", ""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
