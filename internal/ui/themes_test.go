package ui

import "testing"

func TestThemeService_Toggle(t *testing.T) {
	s := NewThemeService("default")

	want := []string{"high-contrast", "minimal", "default"}
	for _, name := range want {
		if got := s.Toggle().Name; got != name {
			t.Errorf("Expected %s, got %s", name, got)
		}
	}
}

func TestThemeService_UnknownFallsBack(t *testing.T) {
	s := NewThemeService("neon")
	if s.Get().Name != "default" {
		t.Errorf("Expected default, got %s", s.Get().Name)
	}
	if s.Set("neon") {
		t.Error("Expected unknown theme rejected")
	}
}

func TestThemeService_Subscribe(t *testing.T) {
	s := NewThemeService("default")

	var seen []string
	unsubscribe := s.Subscribe(func(theme Theme) {
		seen = append(seen, theme.Name)
	})

	s.Set("minimal")
	s.Toggle()
	unsubscribe()
	s.Set("high-contrast")

	if len(seen) != 2 || seen[0] != "minimal" || seen[1] != "default" {
		t.Errorf("Expected [minimal default], got %v", seen)
	}
}

func TestGetAvailableThemes(t *testing.T) {
	names := GetAvailableThemes()
	if len(names) != 3 {
		t.Fatalf("Expected 3 themes, got %v", names)
	}
	for _, name := range names {
		if _, ok := ThemeByName(name); !ok {
			t.Errorf("Expected %s to resolve", name)
		}
	}
}
