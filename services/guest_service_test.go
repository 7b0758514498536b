package services

import (
	"strings"
	"testing"
	"time"

	"hotel-munich-backend/models"

	"gorm.io/datatypes"
)

func ficha(last, first, doc, billingName, billingRUC string, entry time.Time) *models.CheckIn {
	return &models.CheckIn{
		EntryDate:      datatypes.Date(entry),
		LastName:       last,
		FirstName:      first,
		Nationality:    "Paraguaya",
		DocumentNumber: doc,
		Country:        "Paraguay",
		BillingName:    billingName,
		BillingRUC:     billingRUC,
	}
}

func TestRegisterCheckInDefaultsSignature(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	c := ficha("Gimenez", "Carlos", "1234567", "", "", testDay(2025, time.March, 1))
	if err := svc.RegisterCheckIn(c); err != nil {
		t.Fatalf("RegisterCheckIn: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("generated ID not filled back")
	}
	if c.DigitalSignature != "Pendiente" {
		t.Fatalf("signature = %q, want Pendiente", c.DigitalSignature)
	}

	loaded, err := svc.GetCheckIn(c.ID)
	if err != nil {
		t.Fatalf("GetCheckIn: %v", err)
	}
	if loaded == nil || loaded.LastName != "Gimenez" {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestGetCheckInUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	c, err := svc.GetCheckIn(999)
	if err != nil {
		t.Fatalf("GetCheckIn: %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil for unknown id, got %+v", c)
	}
}

func TestUpdateCheckIn(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	c := ficha("Acosta", "Laura", "7654321", "", "", testDay(2025, time.March, 2))
	if err := svc.RegisterCheckIn(c); err != nil {
		t.Fatalf("RegisterCheckIn: %v", err)
	}

	upd := *c
	upd.Destination = "Asuncion"
	upd.BillingName = "ACME SA"
	upd.BillingRUC = "80012345-6"
	ok, err := svc.UpdateCheckIn(c.ID, &upd)
	if err != nil || !ok {
		t.Fatalf("UpdateCheckIn: ok=%v err=%v", ok, err)
	}

	loaded, _ := svc.GetCheckIn(c.ID)
	if loaded.Destination != "Asuncion" || loaded.BillingName != "ACME SA" {
		t.Fatalf("update not applied: %+v", loaded)
	}

	ok, err = svc.UpdateCheckIn(12345, &upd)
	if err != nil {
		t.Fatalf("UpdateCheckIn unknown: %v", err)
	}
	if ok {
		t.Fatal("expected false for unknown ficha id")
	}
}

func TestSearchCheckIns(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	for _, c := range []*models.CheckIn{
		ficha("Martinez", "Pedro", "1111111", "", "", testDay(2025, time.January, 5)),
		ficha("Martinez", "Rosa", "2222222", "", "", testDay(2025, time.February, 10)),
		ficha("Sosa", "Hugo", "3333333", "", "", testDay(2025, time.January, 20)),
	} {
		if err := svc.RegisterCheckIn(c); err != nil {
			t.Fatalf("RegisterCheckIn: %v", err)
		}
	}

	results, err := svc.SearchCheckIns("Martinez")
	if err != nil {
		t.Fatalf("SearchCheckIns: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Newest entry first.
	if !strings.HasPrefix(results[0].Label, "Martinez, Rosa") {
		t.Fatalf("results[0] = %q, want Rosa first", results[0].Label)
	}
	if want := "Martinez, Rosa (2222222) - 2025-02-10"; results[0].Label != want {
		t.Fatalf("label = %q, want %q", results[0].Label, want)
	}

	// Document number matches too.
	results, err = svc.SearchCheckIns("3333333")
	if err != nil {
		t.Fatalf("SearchCheckIns: %v", err)
	}
	if len(results) != 1 || !strings.HasPrefix(results[0].Label, "Sosa, Hugo") {
		t.Fatalf("doc search results = %+v", results)
	}
}

func TestBillingHistoryDedupes(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	for _, c := range []*models.CheckIn{
		ficha("Vera", "Luis", "5555555", "ACME SA", "80012345-6", testDay(2025, time.January, 1)),
		ficha("Vera", "Luis", "5555555", "ACME SA", "80012345-6", testDay(2025, time.February, 1)),
		ficha("Vera", "Luis", "5555555", "Vera Luis", "4455666-1", testDay(2025, time.March, 1)),
		ficha("Vera", "Luis", "5555555", "", "", testDay(2025, time.April, 1)),
	} {
		if err := svc.RegisterCheckIn(c); err != nil {
			t.Fatalf("RegisterCheckIn: %v", err)
		}
	}

	history, err := svc.BillingHistory("5555555")
	if err != nil {
		t.Fatalf("BillingHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d profiles, want 2 (dedup + empty skipped): %+v", len(history), history)
	}
}

func TestAllGuestNames(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)

	for _, c := range []*models.CheckIn{
		ficha("Zarate", "Mia", "9999999", "", "", testDay(2025, time.January, 1)),
		ficha("Aguilar", "Tomas", "8888888", "", "", testDay(2025, time.January, 2)),
		ficha("Aguilar", "Tomas", "8888888", "", "", testDay(2025, time.January, 3)), // repeat visit
	} {
		if err := svc.RegisterCheckIn(c); err != nil {
			t.Fatalf("RegisterCheckIn: %v", err)
		}
	}

	names, err := svc.AllGuestNames()
	if err != nil {
		t.Fatalf("AllGuestNames: %v", err)
	}
	want := []string{"Aguilar, Tomas (8888888)", "Zarate, Mia (9999999)"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
