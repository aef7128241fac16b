package level

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		title, nickname string
		want            Identifiers
	}{
		{
			title: "my-level", nickname: "lvl",
			want: Identifiers{Long: "my-level", Short: "mylevel", NickLower: "lvl", NickUpper: "LVL"},
		},
		{
			title: "My-Long-Level-Name", nickname: "MLn",
			want: Identifiers{Long: "my-long-level-name", Short: "MyLongLe", NickLower: "mln", NickUpper: "MLN"},
		},
		{
			title: "", nickname: "",
			want: Identifiers{},
		},
		{
			title: "abc", nickname: "toolong",
			want: Identifiers{Long: "abc", Short: "abc", NickLower: "toolong", NickUpper: "TOOLONG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, err := Sanitize(tt.title, tt.nickname)
			if err != nil {
				t.Fatalf("Sanitize(%q, %q) failed: %v", tt.title, tt.nickname, err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestSanitizeInvalid(t *testing.T) {
	tests := []struct {
		name, title, nickname, field string
	}{
		{"underscore and bang", "my_level!", "lvl", "title"},
		{"digits in title", "level1", "lvl", "title"},
		{"space in title", "my level", "lvl", "title"},
		{"dash in nickname", "my-level", "l-v", "nickname"},
		{"digit in nickname", "my-level", "lv1", "nickname"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sanitize(tt.title, tt.nickname)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	ids, err := Sanitize("my-level", "lvl")
	if err != nil {
		t.Fatal(err)
	}
	if Render(ids) != Render(ids) {
		t.Error("two renders of the same identifiers differ")
	}
}

func TestRenderGD(t *testing.T) {
	ids, _ := Sanitize("my-level", "lvl")
	gd := Render(ids).GD

	want := "(\"LVL.DGO\"\n" +
		"  (\"static-screen.o\" \"static-screen\")\n" +
		"  (\"my-level.go\" \"my-level\")\n" +
		"  )"
	if gd != want {
		t.Errorf("unexpected gd:\n%s\nwant:\n%s", gd, want)
	}
}

func TestRenderJSONC(t *testing.T) {
	ids, _ := Sanitize("My-Level", "lvl")
	jsonc := Render(ids).JSONC

	for _, want := range []string{
		`"long_name": "my-level",`,
		`"iso_name": "MYLEVEL",`,
		`"nickname": "LVL", // 3 char name, all uppercase`,
		`"gltf_file": "custom_levels/my-level/my-level.glb",`,
		`"automatic_wall_detection": true,`,
		`"automatic_wall_angle": 45.0,`,
		`"etype": "fuel-cell",`,
		`"etype": "crate",`,
		`"etype": "eco-yellow",`,
		`"crate-type":"'steel",`,
	} {
		if !strings.Contains(jsonc, want) {
			t.Errorf("jsonc missing %s", want)
		}
	}
	if !strings.HasPrefix(jsonc, "{\n") || !strings.HasSuffix(jsonc, "\n}") {
		t.Errorf("jsonc is not a single object:\n%s", jsonc)
	}
}

func TestRenderLevelInfo(t *testing.T) {
	ids, _ := Sanitize("my-level", "LVL")
	gc := Render(ids).LevelInfo

	if !strings.HasPrefix(gc, "\n\n(define my-level (new 'static 'level-load-info\n") {
		t.Errorf("unexpected level info head:\n%s", gc)
	}
	for _, want := range []string{
		":visname 'my-level-vis",
		":nickname 'lvl",
		":name \"my-level-start\"",
		":lev0 'my-level",
		":index 26",
	} {
		if !strings.Contains(gc, want) {
			t.Errorf("level info missing %s", want)
		}
	}
	if !strings.HasSuffix(gc, "(cons! *level-load-list* 'my-level)") {
		t.Errorf("level info should end with the load list entry:\n%s", gc)
	}
}

func TestRenderBuildManifest(t *testing.T) {
	ids, _ := Sanitize("my-level", "lvl")
	gp := Render(ids).BuildManifest

	want := "(build-custom-level \"my-level\")\n" +
		"(custom-level-cgo \"LVL.DGO\" \"my-level/mylevel.gd\")"
	if gp != want {
		t.Errorf("unexpected build manifest fragment:\n%s\nwant:\n%s", gp, want)
	}
}

func TestRenderReadme(t *testing.T) {
	ids, _ := Sanitize("my-level", "lvl")
	if got := Render(ids).Readme; got != "test line 1\ntest line 2\ntest line 3" {
		t.Errorf("unexpected readme: %q", got)
	}
}
