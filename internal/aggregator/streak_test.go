package aggregator

import (
	"reflect"
	"testing"

	"github.com/pable/go-tf2-metrics/internal/model"
)

func TestCurrentStreak(t *testing.T) {
	kills := []model.KillEvent{
		kill("foo", "bar"),
		kill("foo", "bar"),
		kill("foo", "bar"),
		kill("bar", "foo"),
		kill("foo", "bar"),
	}
	if got := CurrentStreak("foo", kills); got != 1 {
		t.Errorf("foo: want 1, got %d", got)
	}
	if got := CurrentStreak("bar", kills); got != 0 {
		t.Errorf("bar: want 0, got %d", got)
	}
	if got := CurrentStreak("foo", kills[:3]); got != 3 {
		t.Errorf("foo first 3: want 3, got %d", got)
	}
	if got := CurrentStreak("nobody", kills); got != 0 {
		t.Errorf("unseen player: want 0, got %d", got)
	}
}

func TestCurrentStreakSelfKillEndsRun(t *testing.T) {
	kills := []model.KillEvent{kill("foo", "bar"), kill("foo", "foo")}
	if got := CurrentStreak("foo", kills); got != 0 {
		t.Errorf("want 0 after a self kill, got %d", got)
	}
}

func TestAllStreaks(t *testing.T) {
	kills := []model.KillEvent{
		kill("foo", "bar"),
		kill("foo", "bar"),
		kill("foo", "bar"),
		kill("bar", "foo"),
		kill("foo", "bar"),
	}
	runs := AllStreaks(kills)
	if want := []int{3, 1}; !reflect.DeepEqual(runs["foo"], want) {
		t.Errorf("foo: want %v, got %v", want, runs["foo"])
	}
	if want := []int{0, 0, 0, 1, 0}; !reflect.DeepEqual(runs["bar"], want) {
		t.Errorf("bar: want %v, got %v", want, runs["bar"])
	}
	if got := BestStreak(runs["foo"]); got != 3 {
		t.Errorf("BestStreak: want 3, got %d", got)
	}
	if got := BestStreak(nil); got != 0 {
		t.Errorf("BestStreak(nil): want 0, got %d", got)
	}
}
