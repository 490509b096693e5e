package domain

import "time"

// Product represents a bakery product in the catalog
type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Employee represents a bakery employee record
type Employee struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	PhoneVerified bool          `json:"phone_verified"`
	Address       string        `json:"address"`
	Department    string        `json:"department"`
	Position      string        `json:"position"`
	Salary        float64       `json:"salary"`
	Payout        Payout        `json:"payout"`
	Challenge     *OTPChallenge `json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Payout holds an employee's preferred payout details
type Payout struct {
	MethodPreferred string      `json:"method_preferred"`
	Bank            BankDetails `json:"bank"`
	Card            CardDetails `json:"card"`
	ConsentSaveCard bool        `json:"consent_save_card"`
}

// BankDetails holds bank transfer payout information
type BankDetails struct {
	AccountName        string `json:"account_name"`
	BankName           string `json:"bank_name"`
	Branch             string `json:"branch"`
	AccountNumberLast4 string `json:"account_number_last4"`
	Swift              string `json:"swift"`
}

// CardDetails holds card payout information (tokenized, last-4 only)
type CardDetails struct {
	Brand       string `json:"brand"`
	Last4       string `json:"last4"`
	ExpMonth    int    `json:"exp_month"`
	ExpYear     int    `json:"exp_year"`
	Token       string `json:"token"`
	BillingName string `json:"billing_name"`
}

// OTPChallenge is the one-time-passcode challenge stored on an employee
// record. At most one challenge is active per employee; it is single-use
// and never returned in default reads.
type OTPChallenge struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// OTPIssueResult describes the outcome of issuing a challenge.
// DevCode is populated only on the development path; it is empty whenever
// the code was delivered through the SMS provider.
type OTPIssueResult struct {
	Phone     string
	DevCode   string
	Delivered bool
}

// Attendance represents one employee attendance row, one per calendar day
type Attendance struct {
	ID         uint             `json:"id"`
	EmployeeID uint             `json:"employee_id"`
	Date       time.Time        `json:"date"`
	CheckIn    string           `json:"check_in"`
	CheckOut   string           `json:"check_out"`
	Status     string           `json:"status"`
	Note       string           `json:"note"`
	Employee   *EmployeeSummary `json:"employee,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// EmployeeSummary is the joined employee projection on attendance rows
type EmployeeSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceLate    = "late"
	AttendanceAbsent  = "absent"
)

// Account represents a customer or admin account
type Account struct {
	ID           uint       `json:"id"`
	Firstname    string     `json:"firstname"`
	Lastname     string     `json:"lastname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	Newsletter   bool       `json:"newsletter"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Account roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// AuthResult represents authentication outcome
type AuthResult struct {
	Account      *Account
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session represents a logged-in account session
type Session struct {
	ID        string
	AccountID uint
	ExpiresAt time.Time
	CreatedAt time.Time
}
