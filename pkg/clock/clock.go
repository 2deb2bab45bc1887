package clock

import "time"

// BusinessClock entrega la fecha contable actual según la zona horaria del negocio.
// El día contable se define por el calendario local, no por UTC: un cierre a las
// 23:50 en Bogotá pertenece al día local aunque en UTC ya sea el día siguiente.
type BusinessClock struct {
	loc *time.Location
}

// New carga la zona horaria indicada. Si el nombre es inválido o vacío cae a UTC.
func New(timezone string) (*BusinessClock, error) {
	if timezone == "" {
		return &BusinessClock{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &BusinessClock{loc: loc}, nil
}

// Today devuelve la fecha local truncada a medianoche en la zona del negocio.
func (c *BusinessClock) Today() time.Time {
	now := time.Now().In(c.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}
