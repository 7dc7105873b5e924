package interact

import (
	"testing"

	"github.com/annel0/worldobjects/internal/client/clienttest"
	"github.com/annel0/worldobjects/internal/model"
	"github.com/annel0/worldobjects/internal/vec"
	"github.com/annel0/worldobjects/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// stubModel записывает вызовы, чтобы проверить делегирование
type stubModel struct {
	clickResult  bool
	actionResult bool
	clicks       []bool
	hovers       int
	actions      [][2]string
}

func (s *stubModel) Kind() world.Variant          { return world.VariantPrimary }
func (s *stubModel) Origin() vec.Vec3             { return vec.Vec3{} }
func (s *stubModel) Surfaces() []world.Renderable { return nil }
func (s *stubModel) Point() vec.Vec2              { return vec.Vec2{X: 1, Y: 1} }
func (s *stubModel) Contains(vec.Vec2) bool       { return true }
func (s *stubModel) Hover()                       { s.hovers++ }

func (s *stubModel) Click(primary bool) bool {
	s.clicks = append(s.clicks, primary)
	return s.clickResult
}

func (s *stubModel) DoAction(action, option string) bool {
	s.actions = append(s.actions, [2]string{action, option})
	return s.actionResult
}

type stubTarget struct {
	id    int
	loc   vec.Vec3
	model model.Model
}

func (s *stubTarget) ID() int            { return s.id }
func (s *stubTarget) Location() vec.Vec3 { return s.loc }
func (s *stubTarget) Model() model.Model { return s.model }

type stubFinder struct {
	target Target
	calls  []int
}

func (f *stubFinder) Nearest(id int) (Target, bool) {
	f.calls = append(f.calls, id)
	return f.target, f.target != nil
}

func newDispatcher(t *testing.T) (*clienttest.Fakes, *Dispatcher, *Metrics) {
	t.Helper()
	f, c := clienttest.New()
	metrics := NewMetrics(prometheus.NewRegistry())
	d := NewDispatcher(Config{Client: c, Metrics: metrics})
	return f, d, metrics
}

func TestClick_ModelBypassesTilePath(t *testing.T) {
	f, d, metrics := newDispatcher(t)
	m := &stubModel{clickResult: false}
	target := &stubTarget{id: 10, loc: vec.Tile(50, 50, 0), model: m}

	assert.False(t, d.Click(target, true), "результат модели возвращается как есть")
	assert.Equal(t, []bool{true}, m.clicks)
	assert.Zero(t, f.Calc.TileCalls)
	assert.Empty(t, f.Mouse.Moves)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.interactions.WithLabelValues("click", PathModel, "fail")))

	m.clickResult = true
	assert.True(t, d.Click(target, false))
	assert.Equal(t, []bool{true, false}, m.clicks)
	assert.Zero(t, f.Calc.TileCalls)
}

func TestClick_TileFallback(t *testing.T) {
	tile := vec.Tile(200, 150, 0)

	t.Run("on screen both checks", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		assert.True(t, d.Click(&stubTarget{id: 1, loc: tile}, true))
		assert.Equal(t, 1, f.Calc.TileCalls)
		assert.Equal(t, []vec.Vec2{{X: 200, Y: 150}}, f.Mouse.Moves)
		assert.Equal(t, []bool{true}, f.Mouse.Clicks)
	})

	t.Run("off screen on first projection", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		assert.False(t, d.Click(&stubTarget{id: 1, loc: vec.Tile(-5, 10, 0)}, true))
		assert.Equal(t, 1, f.Calc.TileCalls)
		assert.Empty(t, f.Mouse.Moves)
		assert.Empty(t, f.Mouse.Clicks)
	})

	t.Run("reverify fails, second projection succeeds", func(t *testing.T) {
		f, d, metrics := newDispatcher(t)
		f.Calc.OnScreenResults = []bool{true, false, true}

		assert.True(t, d.Click(&stubTarget{id: 1, loc: tile}, false))
		assert.Equal(t, 2, f.Calc.TileCalls)
		assert.Len(t, f.Mouse.Moves, 2)
		assert.Equal(t, []bool{false}, f.Mouse.Clicks)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.reprojected))
	})

	t.Run("reverify fails, second projection off screen", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		f.Calc.OnScreenResults = []bool{true, false, false}

		assert.False(t, d.Click(&stubTarget{id: 1, loc: tile}, true))
		assert.Equal(t, 2, f.Calc.TileCalls)
		assert.Len(t, f.Mouse.Moves, 1)
		assert.Empty(t, f.Mouse.Clicks)
	})

	t.Run("never more than two projections", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		f.Calc.OnScreenResults = []bool{true, false, true}
		n := 0
		f.Calc.TileFunc = func(tile vec.Vec3) vec.Vec2 {
			n++
			return vec.Vec2{X: 10 * n, Y: 10}
		}

		assert.True(t, d.Click(&stubTarget{id: 1, loc: tile}, true))
		assert.Equal(t, 2, n)
		assert.Equal(t, []vec.Vec2{{X: 10, Y: 10}, {X: 20, Y: 10}}, f.Mouse.Moves)
		assert.LessOrEqual(t, len(f.Mouse.Clicks), 2)
	})
}

func TestHover(t *testing.T) {
	t.Run("model always succeeds", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		m := &stubModel{}
		assert.True(t, d.Hover(&stubTarget{id: 3, loc: vec.Tile(-100, -100, 0), model: m}))
		assert.Equal(t, 1, m.hovers)
		assert.Zero(t, f.Calc.TileCalls)
	})

	t.Run("tile on screen", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		assert.True(t, d.Hover(&stubTarget{id: 3, loc: vec.Tile(30, 40, 0)}))
		assert.Equal(t, []vec.Vec2{{X: 30, Y: 40}}, f.Mouse.Moves)
		assert.Empty(t, f.Mouse.Clicks)
	})

	t.Run("tile off screen, no retry", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		assert.False(t, d.Hover(&stubTarget{id: 3, loc: vec.Tile(3000, 40, 0)}))
		assert.Equal(t, 1, f.Calc.TileCalls)
		assert.Empty(t, f.Mouse.Moves)
	})
}

func TestPerformAction(t *testing.T) {
	t.Run("model searches its own menu", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		m := &stubModel{actionResult: true}
		assert.True(t, d.PerformAction(&stubTarget{id: 7, model: m}, "Chop down", "Tree"))
		assert.Equal(t, [][2]string{{"Chop down", "Tree"}}, m.actions)
		assert.Empty(t, f.Menu.Calls)
	})

	t.Run("tile menu without model", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		f.Menu.Available["Search"] = true
		loc := vec.Tile(12, 34, 1)

		assert.True(t, d.PerformAction(&stubTarget{id: 7, loc: loc}, "Search", ""))
		require.Len(t, f.Menu.Calls, 1)
		require.NotNil(t, f.Menu.Calls[0].Tile)
		assert.Equal(t, loc, *f.Menu.Calls[0].Tile)

		assert.False(t, d.PerformAction(&stubTarget{id: 7, loc: loc}, "Steal-from", ""))
	})
}

func TestOrient(t *testing.T) {
	t.Run("nothing to reacquire", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		finder := &stubFinder{}
		d.SetFinder(finder)

		assert.False(t, d.Orient(&stubTarget{id: 99}))
		assert.Equal(t, []int{99}, finder.calls)
		assert.Empty(t, f.Camera.Turns)
	})

	t.Run("already visible reports false", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		d.SetFinder(&stubFinder{target: &stubTarget{id: 99, loc: vec.Tile(10, 10, 0)}})

		assert.False(t, d.Orient(&stubTarget{id: 99}))
		assert.Empty(t, f.Camera.Turns)
	})

	t.Run("turns toward reacquired instance", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		stale := &stubTarget{id: 99, loc: vec.Tile(1, 1, 0)}
		fresh := &stubTarget{id: 99, loc: vec.Tile(900, 10, 0)}
		d.SetFinder(&stubFinder{target: fresh})

		// после поворота камеры тайл попадает на экран
		f.Camera.OnTurn = func(tile vec.Vec3) {
			f.Calc.TileFunc = func(vec.Vec3) vec.Vec2 { return vec.Vec2{X: 400, Y: 250} }
		}

		assert.True(t, d.Orient(stale))
		assert.Equal(t, []vec.Vec3{fresh.loc}, f.Camera.Turns)
	})

	t.Run("turn that does not help", func(t *testing.T) {
		f, d, _ := newDispatcher(t)
		d.SetFinder(&stubFinder{target: &stubTarget{id: 99, loc: vec.Tile(900, 10, 0)}})

		assert.False(t, d.Orient(&stubTarget{id: 99}))
		assert.Len(t, f.Camera.Turns, 1)
	})
}

func TestNilTargetFailsClosed(t *testing.T) {
	f, d, _ := newDispatcher(t)
	d.SetFinder(&stubFinder{target: &stubTarget{id: 1}})

	assert.False(t, d.Click(nil, true))
	assert.False(t, d.Hover(nil))
	assert.False(t, d.PerformAction(nil, "Open", ""))
	assert.False(t, d.Orient(nil))
	assert.False(t, d.Visible(nil))
	assert.Empty(t, f.Mouse.Moves)
}

func TestSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	_, c := clienttest.New()
	d := NewDispatcher(Config{Client: c, TracerProvider: tp})

	d.Click(&stubTarget{id: 42, loc: vec.Tile(5, 5, 0)}, true)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "interact.click", spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "42", attrs["object.id"])
	assert.Equal(t, PathTile, attrs["interact.path"])
	assert.Equal(t, "true", attrs["interact.ok"])
}
