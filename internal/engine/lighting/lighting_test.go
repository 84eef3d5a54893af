package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestAttenuation(t *testing.T) {
	tests := []struct {
		att  Attenuation
		d    float32
		want float32
	}{
		{Attenuation{Constant: 1}, 10, 1},
		{Attenuation{Constant: 1, Linear: 1}, 1, 0.5},
		{Attenuation{Constant: 0, Linear: 0, Exponent: 1}, 2, 0.25},
		{Attenuation{Constant: 1, Linear: 0.5, Exponent: 0.25}, 2, 1 / 3.0},
		{Attenuation{}, 3, 1},
	}
	for _, tt := range tests {
		if got := tt.att.At(tt.d); !near(got, tt.want, 1e-6) {
			t.Errorf("%+v.At(%f) = %f, want %f", tt.att, tt.d, got, tt.want)
		}
	}
}

func TestSpotConeBoundaryIsExclusive(t *testing.T) {
	s := NewSpotLight(PointLight{Intensity: 1}, mgl32.Vec3{0, 0, -1}, 15)

	if got := SpotConeFactor(s.CutOff(), s.CutOff()); got != 0 {
		t.Errorf("factor on the boundary = %f, want 0", got)
	}

	// A fragment 15 degrees off axis sits on the boundary.
	rad := float64(mgl32.DegToRad(15))
	frag := mgl32.Vec3{float32(math.Sin(rad)), 0, -float32(math.Cos(rad))}
	if got := SpotFactor(s, frag); !near(got, 0, 1e-5) {
		t.Errorf("factor at 15 degrees = %f, want 0", got)
	}

	// Outside the cone.
	if got := SpotFactor(s, mgl32.Vec3{1, 0, -1}); got != 0 {
		t.Errorf("factor at 45 degrees = %f, want 0", got)
	}

	// On axis receives full intensity.
	if got := SpotFactor(s, mgl32.Vec3{0, 0, -5}); !near(got, 1, 1e-6) {
		t.Errorf("factor on axis = %f, want 1", got)
	}
}

func TestSetCutOffAngleCachesCosine(t *testing.T) {
	s := NewSpotLight(PointLight{}, mgl32.Vec3{0, -1, 0}, 60)
	if !near(s.CutOff(), 0.5, 1e-6) {
		t.Errorf("cos(60) = %f, want 0.5", s.CutOff())
	}
	s.SetCutOffAngle(0)
	if s.CutOffAngle() != 0 || !near(s.CutOff(), 1, 1e-6) {
		t.Errorf("expected cutoff 1 for 0 degrees, got %f", s.CutOff())
	}
}

func TestFogFactor(t *testing.T) {
	if got := FogFactor(0, 0.5); got != 1 {
		t.Errorf("fog at distance 0 = %f, want 1", got)
	}
	if got := FogFactor(10, 0); got != 1 {
		t.Errorf("fog with zero density = %f, want 1", got)
	}
	want := float32(1 / math.Exp(1))
	if got := FogFactor(2, 0.5); !near(got, want, 1e-6) {
		t.Errorf("fog(2, 0.5) = %f, want %f", got, want)
	}
	if FogFactor(50, 1) > FogFactor(5, 1) {
		t.Error("fog factor must not grow with distance")
	}
}

func TestFogColor(t *testing.T) {
	got := FogColor(mgl32.Vec3{0.5, 0.5, 0.5},
		AmbientLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: 0.2},
		DirectionalLight{Color: mgl32.Vec3{1, 0, 0}, Intensity: 1})
	want := mgl32.Vec3{0.6, 0.1, 0.1}
	for i := 0; i < 3; i++ {
		if !near(got[i], want[i], 1e-6) {
			t.Fatalf("FogColor = %v, want %v", got, want)
		}
	}
}

func TestPackZeroFillsAndCaps(t *testing.T) {
	l := NewSceneLights()
	for i := 0; i < MaxPointLights+2; i++ {
		l.Points = append(l.Points, &PointLight{Intensity: 1, Position: mgl32.Vec3{float32(i), 0, 0}})
	}
	l.Spots = append(l.Spots, NewSpotLight(PointLight{Intensity: 2}, mgl32.Vec3{0, -1, 0}, 30))

	u := Pack(l, mgl32.Translate3D(0, 0, -10))

	if u.PointCount != MaxPointLights {
		t.Errorf("point count = %d, want cap %d", u.PointCount, MaxPointLights)
	}
	if u.SpotCount != 1 {
		t.Errorf("spot count = %d, want 1", u.SpotCount)
	}
	for i := 1; i < MaxSpotLights; i++ {
		if u.Spots[i] != (PackedSpot{}) {
			t.Errorf("spot slot %d should be zero, got %+v", i, u.Spots[i])
		}
	}
	if got := u.Points[3].Position; got != (mgl32.Vec3{3, 0, -10}) {
		t.Errorf("view-space position = %v, want (3,0,-10)", got)
	}
	if got := u.DirDirection; got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("translation must not affect light direction, got %v", got)
	}
}

func TestPackNil(t *testing.T) {
	if u := Pack(nil, mgl32.Ident4()); u != (Uniforms{}) {
		t.Errorf("expected zero uniforms, got %+v", u)
	}
}

func TestKinds(t *testing.T) {
	l := NewSceneLights()
	l.Points = []*PointLight{{}, {}}
	l.Spots = []*SpotLight{NewSpotLight(PointLight{}, mgl32.Vec3{0, -1, 0}, 20)}

	counts := map[Kind]int{}
	for _, light := range l.All() {
		counts[light.Kind()]++
	}
	if counts[KindAmbient] != 1 || counts[KindDirectional] != 1 || counts[KindPoint] != 2 || counts[KindSpot] != 1 {
		t.Errorf("unexpected kind counts %v", counts)
	}
	if l.Count(KindSpot) != 1 {
		t.Errorf("Count(spot) = %d", l.Count(KindSpot))
	}
	if KindSpot.String() != "spot" || Kind(42).String() != "unknown" {
		t.Error("unexpected Kind names")
	}
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		lon, lat float32
		want     mgl32.Vec3
	}{
		{0, 90, mgl32.Vec3{0, 1, 0}},
		{0, 0, mgl32.Vec3{0, 0, 1}},
		{90, 0, mgl32.Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		got := SunDirection(tt.lon, tt.lat)
		for i := 0; i < 3; i++ {
			if !near(got[i], tt.want[i], 1e-6) {
				t.Errorf("SunDirection(%f, %f) = %v, want %v", tt.lon, tt.lat, got, tt.want)
				break
			}
		}
	}
}
