package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/room-booking/internal/persistence"
	"github.com/example/room-booking/internal/testfixtures"
)

func TestStorageRoomRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)

	created, err := h.Rooms.CreateRoom(ctx, testfixtures.NewRoomFixture(
		testfixtures.WithRoomName("Conference Room A"),
		testfixtures.WithRoomCapacity(10),
	))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	fetched, err := h.Rooms.GetRoom(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Name != "Conference Room A" || fetched.Capacity != 10 || fetched.Color != "#3b82f6" {
		t.Fatalf("unexpected room %+v", fetched)
	}

	fetched.Color = "#ef4444"
	updated, err := h.Rooms.UpdateRoom(ctx, fetched)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Color != "#ef4444" {
		t.Fatalf("expected updated color, got %q", updated.Color)
	}

	if _, err := h.Rooms.UpdateRoom(ctx, persistence.Room{ID: 999, Name: "Ghost", Capacity: 1}); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := h.Rooms.GetRoom(ctx, 999); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStorageBookingRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	start := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

	room, err := h.Rooms.CreateRoom(ctx, testfixtures.NewRoomFixture(testfixtures.WithRoomName("Board Room")))
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}

	created, err := h.Bookings.CreateBooking(ctx, testfixtures.NewBookingFixture(
		testfixtures.WithBookingRoom(room.ID),
		testfixtures.WithBookingSlot(start, 90*time.Minute),
		testfixtures.WithBookingBooker("Alice", "alice@example.com"),
		testfixtures.WithBookingDescription("quarterly review"),
	))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected created_at stamp")
	}

	fetched, err := h.Bookings.GetBooking(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !fetched.Start.Equal(start) || fetched.Duration != 90*time.Minute {
		t.Fatalf("slot did not round-trip: %+v", fetched)
	}
	if !fetched.End().Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("unexpected end %v", fetched.End())
	}

	bySlot, err := h.Bookings.GetBookingBySlot(ctx, room.ID, start)
	if err != nil {
		t.Fatalf("slot lookup: %v", err)
	}
	if bySlot.ID != created.ID {
		t.Fatalf("expected booking %d, got %d", created.ID, bySlot.ID)
	}

	orphan := testfixtures.NewBookingFixture(testfixtures.WithBookingRoom(999))
	if _, err := h.Bookings.CreateBooking(ctx, orphan); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}

	if err := h.Bookings.DeleteBooking(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := h.Bookings.DeleteBooking(ctx, created.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStorageBookingFilters(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

	roomA, _ := h.Rooms.CreateRoom(ctx, testfixtures.NewRoomFixture())
	roomB, _ := h.Rooms.CreateRoom(ctx, testfixtures.NewRoomFixture())

	mustCreate := func(roomID int64, start time.Time, duration time.Duration) {
		t.Helper()
		booking := testfixtures.NewBookingFixture(
			testfixtures.WithBookingRoom(roomID),
			testfixtures.WithBookingSlot(start, duration),
		)
		if _, err := h.Bookings.CreateBooking(ctx, booking); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	mustCreate(roomA.ID, day.Add(9*time.Hour), time.Hour)
	mustCreate(roomA.ID, day.Add(14*time.Hour), time.Hour)
	mustCreate(roomB.ID, day.Add(9*time.Hour), time.Hour)

	all, err := h.Bookings.ListBookings(ctx, persistence.BookingFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected three bookings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].ID <= all[i-1].ID {
			t.Fatalf("expected ascending ids, got %v", all)
		}
	}

	byRoom, err := h.Bookings.ListBookings(ctx, persistence.BookingFilter{RoomID: &roomA.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byRoom) != 2 {
		t.Fatalf("expected two bookings in room A, got %d", len(byRoom))
	}

	noon := day.Add(12 * time.Hour)
	afternoon, err := h.Bookings.ListBookings(ctx, persistence.BookingFilter{RoomID: &roomA.ID, EndsAtOrAfter: &noon})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(afternoon) != 1 || !afternoon[0].Start.Equal(day.Add(14*time.Hour)) {
		t.Fatalf("unexpected afternoon bookings %v", afternoon)
	}

	morningEnd := day.Add(10 * time.Hour)
	morning, err := h.Bookings.ListBookings(ctx, persistence.BookingFilter{RoomID: &roomA.ID, StartsAtOrBefore: &morningEnd})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(morning) != 1 || !morning[0].Start.Equal(day.Add(9*time.Hour)) {
		t.Fatalf("unexpected morning bookings %v", morning)
	}
}

func TestStorageBookingFilterSubSecondBounds(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	base := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

	room, err := h.Rooms.CreateRoom(ctx, testfixtures.NewRoomFixture())
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}
	// The booking covers [10:00:00.250, 10:00:00.750).
	created, err := h.Bookings.CreateBooking(ctx, testfixtures.NewBookingFixture(
		testfixtures.WithBookingRoom(room.ID),
		testfixtures.WithBookingSlot(base.Add(250*time.Millisecond), 500*time.Millisecond),
	))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name   string
		filter persistence.BookingFilter
		want   int
	}{
		{
			name:   "bound just before the end keeps the booking",
			filter: persistence.BookingFilter{EndsAtOrAfter: timePtr(base.Add(700 * time.Millisecond))},
			want:   1,
		},
		{
			name:   "bound just past the end drops the booking",
			filter: persistence.BookingFilter{EndsAtOrAfter: timePtr(base.Add(800 * time.Millisecond))},
			want:   0,
		},
		{
			name:   "bound at the exact start keeps the booking",
			filter: persistence.BookingFilter{StartsAtOrBefore: timePtr(base.Add(250 * time.Millisecond))},
			want:   1,
		},
		{
			name:   "bound just before the start drops the booking",
			filter: persistence.BookingFilter{StartsAtOrBefore: timePtr(base.Add(200 * time.Millisecond))},
			want:   0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := h.Bookings.ListBookings(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d bookings, got %v", tc.want, got)
			}
			if tc.want == 1 && got[0].ID != created.ID {
				t.Fatalf("expected booking %d, got %d", created.ID, got[0].ID)
			}
		})
	}
}

func TestStorageSessions(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	now := h.Clock.Now()

	created, err := h.Sessions.CreateSession(ctx, persistence.Session{ID: "s1", Token: "tok-1", ExpiresAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, created.CreatedAt)
	}

	if _, err := h.Sessions.CreateSession(ctx, persistence.Session{ID: "s2", Token: "tok-1", ExpiresAt: now.Add(time.Hour)}); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	revoked, err := h.Sessions.RevokeSession(ctx, "tok-1", now.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked.RevokedAt == nil || !revoked.RevokedAt.Equal(now.Add(5*time.Minute)) {
		t.Fatalf("unexpected revocation %+v", revoked)
	}

	if _, err := h.Sessions.CreateSession(ctx, persistence.Session{ID: "s3", Token: "tok-old", ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	h.Clock.Advance(2 * time.Minute)
	if err := h.Sessions.DeleteExpiredSessions(ctx, h.Clock.Now()); err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if _, err := h.Sessions.GetSession(ctx, "tok-old"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected expired session gone, got %v", err)
	}
	if _, err := h.Sessions.GetSession(ctx, "tok-1"); err != nil {
		t.Fatalf("expected unexpired session to remain, got %v", err)
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
