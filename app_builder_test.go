package galaxy

import "testing"

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

type orderModule struct {
	name  string
	order *[]string
}

func (m orderModule) Install(app *App, commands *Commands) {
	*m.order = append(*m.order, m.name)
}

func TestAppBuilder_InstallsModules(t *testing.T) {
	mod := &MockModule{}
	app := NewAppBuilder().UseModule(mod).Build()

	if !mod.installed {
		t.Errorf("Expected module to be installed")
	}
	if app == nil {
		t.Fatalf("Expected an app")
	}
}

func TestAppBuilder_InstallOrder(t *testing.T) {
	var order []string
	NewAppBuilder().
		UseModule(orderModule{"a", &order}).
		UseModule(orderModule{"b", &order}, orderModule{"c", &order}).
		Build()

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("Expected install order [a b c], got %v", order)
	}
}

func TestAppBuilder_BuildTwiceInstallsOnce(t *testing.T) {
	var order []string
	b := NewAppBuilder().UseModule(orderModule{"a", &order})
	b.Build()
	b.Build()

	if len(order) != 1 {
		t.Errorf("Expected one install, got %d", len(order))
	}
}

func TestAppBuilder_CustomStage(t *testing.T) {
	custom := Stage{Name: "Custom"}
	app := NewAppBuilder().UseStage(custom, AfterStage(Update)).Build()

	if app.stages[3].Name != "Custom" {
		t.Errorf("Expected Custom after Update, got %v", app.stages)
	}
}
