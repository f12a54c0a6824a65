package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	return s == PaymentPending || s == PaymentPaid
}

type PaymentMethod string

const (
	PaymentOnSite PaymentMethod = "on_site"
	PaymentOnline PaymentMethod = "online"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	return m == PaymentOnSite || m == PaymentOnline
}

// HolderKind names the three things that can occupy a slot.
type HolderKind string

const (
	HolderBooking   HolderKind = "booking"
	HolderRecurring HolderKind = "recurring"
	HolderLesson    HolderKind = "lesson"
)

func (k HolderKind) String() string {
	return string(k)
}

// ConflictMessage is the user-facing reason a slot held by this kind is unavailable.
func (k HolderKind) ConflictMessage() string {
	switch k {
	case HolderBooking:
		return "conflicts with existing booking"
	case HolderRecurring:
		return "conflicts with recurring booking"
	case HolderLesson:
		return "conflicts with scheduled lesson"
	default:
		return "slot unavailable"
	}
}
