package domain

type CommissionStatus string

const (
	CommissionStatusPending   CommissionStatus = "pending"
	CommissionStatusCompleted CommissionStatus = "completed"
	CommissionStatusRefunded  CommissionStatus = "refunded"
)

// CommissionTransaction splits a booking's total into platform commission
// and host payout. Rows are produced by the payment/booking flow and only
// read here: host earnings sum the payout of completed rows.
type CommissionTransaction struct {
	ID                   string           `json:"id"`
	BookingID            string           `json:"booking_id"`
	HostID               string           `json:"host_id"`
	TotalAmountDzd       int64            `json:"total_amount_dzd"`
	CommissionAmountDzd  int64            `json:"commission_amount_dzd"`
	HostPayoutDzd        int64            `json:"host_payout_dzd"`
	Status               CommissionStatus `json:"status"`
	CreatedOn            string           `json:"created_on"`
}
