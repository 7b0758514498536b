package config

import (
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hotel-munich-backend/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Legacy workbook filenames from the spreadsheet era. When one of them sits
// in the working directory and its target table is empty, the rows are
// migrated once.
const (
	usersWorkbook    = "usuarios.xlsx"
	reservasWorkbook = "reservas.xlsx"
	fichasWorkbook   = "fichas_huespedes.xlsx"
)

var firstIntRe = regexp.MustCompile(`\d+`)

// cleanStayDays pulls the first integer out of free-text like "3 noches";
// anything unparseable becomes a 1-night stay.
func cleanStayDays(val string) int {
	m := firstIntRe.FindString(val)
	if m == "" {
		return 1
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 1 {
		return 1
	}
	if n > 365 {
		return 365
	}
	return n
}

// parseLegacyDate accepts the handful of formats the workbooks contain.
func parseLegacyDate(val string) (time.Time, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		"2006-01-02", "2006-01-02 15:04:05", "02/01/2006", "01-02-06", "1/2/06 15:04",
	} {
		if t, err := time.Parse(layout, val); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseLegacyTime(val string) *string {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, val); err == nil {
			s := t.Format("15:04")
			return &s
		}
	}
	return nil
}

// sheetRecords loads the first sheet of a workbook as header-keyed maps.
func sheetRecords(path string) ([]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[strings.TrimSpace(name)] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func tableIsEmpty(db *gorm.DB, model interface{}) bool {
	var n int64
	db.Model(model).Count(&n)
	return n == 0
}

// ImportLegacyWorkbooks runs the one-shot Excel migration. Missing files
// and already-populated tables are skipped silently; bad rows are logged
// and dropped rather than aborting the whole import.
func ImportLegacyWorkbooks(db *gorm.DB) {
	importUsers(db)
	importReservations(db)
	importFichas(db)
}

func importUsers(db *gorm.DB) {
	if _, err := os.Stat(usersWorkbook); err != nil {
		return
	}
	if !tableIsEmpty(db, &models.User{}) {
		return
	}

	records, err := sheetRecords(usersWorkbook)
	if err != nil {
		log.Printf("warning: failed to read %s: %v", usersWorkbook, err)
		return
	}

	imported := 0
	for _, rec := range records {
		if rec["Usuario"] == "" {
			continue
		}
		u := models.User{
			Username: rec["Usuario"],
			Password: rec["Password"], // legacy plaintext, upgraded on first login
			Role:     rec["Rol"],
			RealName: rec["Nombre_Real"],
		}
		if err := db.Create(&u).Error; err != nil {
			log.Printf("warning: skipping user %s: %v", u.Username, err)
			continue
		}
		imported++
	}
	log.Printf("Imported %d users from %s", imported, usersWorkbook)
}

func importReservations(db *gorm.DB) {
	if _, err := os.Stat(reservasWorkbook); err != nil {
		return
	}
	if !tableIsEmpty(db, &models.Reservation{}) {
		return
	}

	records, err := sheetRecords(reservasWorkbook)
	if err != nil {
		log.Printf("warning: failed to read %s: %v", reservasWorkbook, err)
		return
	}

	imported := 0
	for _, rec := range records {
		if rec["Nro_Reserva"] == "" {
			continue
		}

		checkIn, ok := parseLegacyDate(rec["Fecha_Entrada"])
		if !ok {
			log.Printf("warning: reservation %s has no parseable check-in date, skipped", rec["Nro_Reserva"])
			continue
		}

		createdAt := time.Now()
		if t, ok := parseLegacyDate(rec["Fecha_Registro"]); ok {
			createdAt = t
		}

		price := 0.0
		if v, err := strconv.ParseFloat(strings.ReplaceAll(rec["Precio"], ",", ""), 64); err == nil && v >= 0 {
			price = v
		}

		r := models.Reservation{
			ID:                 rec["Nro_Reserva"],
			CreatedAt:          createdAt,
			CheckInDate:        models.DateOf(checkIn),
			StayDays:           cleanStayDays(rec["Estadia_Dias"]),
			GuestName:          rec["A_Nombre_De"],
			RoomID:             rec["Habitacion"],
			RoomType:           rec["Tipo_Habitacion"],
			Price:              price,
			ArrivalTime:        parseLegacyTime(rec["Hora_Llegada"]),
			ReservedBy:         rec["Reservado_Por"],
			ContactPhone:       rec["Telefono"],
			ReceivedBy:         rec["Recibido_Por"],
			Status:             rec["Estado"],
			CancellationReason: rec["Motivo_Cancelacion"],
			CancelledBy:        rec["Cancelado_Por"],
		}
		if r.Status == "" {
			r.Status = models.StatusConfirmed
		}
		if err := db.Create(&r).Error; err != nil {
			log.Printf("warning: skipping reservation %s: %v", r.ID, err)
			continue
		}
		imported++
	}
	log.Printf("Imported %d reservations from %s", imported, reservasWorkbook)
}

func importFichas(db *gorm.DB) {
	if _, err := os.Stat(fichasWorkbook); err != nil {
		return
	}
	if !tableIsEmpty(db, &models.CheckIn{}) {
		return
	}

	records, err := sheetRecords(fichasWorkbook)
	if err != nil {
		log.Printf("warning: failed to read %s: %v", fichasWorkbook, err)
		return
	}

	imported := 0
	for _, rec := range records {
		entry := time.Now()
		if t, ok := parseLegacyDate(rec["Fecha_Ingreso"]); ok {
			entry = t
		}

		var birth *datatypes.Date
		if t, ok := parseLegacyDate(rec["Fecha_Nacimiento"]); ok {
			d := datatypes.Date(t)
			birth = &d
		}

		var roomID *string
		if rec["Habitacion"] != "" {
			v := rec["Habitacion"]
			roomID = &v
		}

		signature := rec["Firma_Digital"]
		if signature == "" {
			signature = "Pendiente"
		}

		ch := models.CheckIn{
			EntryDate:        datatypes.Date(models.DateOf(entry)),
			RoomID:           roomID,
			CheckInTime:      parseLegacyTime(rec["Hora"]),
			LastName:         rec["Apellidos"],
			FirstName:        rec["Nombres"],
			Nationality:      rec["Nacionalidad"],
			BirthDate:        birth,
			Origin:           rec["Procedencia"],
			Destination:      rec["Destino"],
			CivilStatus:      rec["Estado_Civil"],
			DocumentNumber:   rec["Nro_Documento"],
			Country:          rec["Pais"],
			BillingName:      rec["Facturacion_Nombre"],
			BillingRUC:       rec["Facturacion_RUC"],
			VehicleModel:     rec["Vehiculo_Modelo"],
			VehiclePlate:     rec["Vehiculo_Chapa"],
			DigitalSignature: signature,
		}
		if err := db.Create(&ch).Error; err != nil {
			log.Printf("warning: skipping ficha for %s, %s: %v", ch.LastName, ch.FirstName, err)
			continue
		}
		imported++
	}
	log.Printf("Imported %d fichas from %s", imported, fichasWorkbook)
}
