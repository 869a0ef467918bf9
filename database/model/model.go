package model

import "time"

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
	EventPostponed EventStatus = "postponed"
)

type ExpenseStatus string

const (
	ExpensePending ExpenseStatus = "pending"
	ExpensePaid    ExpenseStatus = "paid"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Role names used throughout the panel. RoleAdmin bypasses every role gate.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleBandMember = "band_member"
	RoleClient     = "client"
	RoleCustomer   = "customer"
)

type User struct {
	Id        int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string     `json:"name" form:"name"`
	Email     string     `json:"email" form:"email" gorm:"uniqueIndex"`
	Password  string     `json:"-" form:"-"`
	Phone     string     `json:"phone" form:"phone"`
	Status    UserStatus `json:"status" form:"status" gorm:"default:active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Roles []Role `json:"roles" gorm:"many2many:user_roles;joinForeignKey:UserId;joinReferences:RoleId"`
}

type Role struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"uniqueIndex"`
	Description string `json:"description"`
}

type UserRole struct {
	UserId int `json:"userId" gorm:"primaryKey"`
	RoleId int `json:"roleId" gorm:"primaryKey"`
}

type Booking struct {
	Id          int           `json:"id" gorm:"primaryKey;autoIncrement"`
	CompanyName string        `json:"companyName" form:"companyName"`
	EventName   string        `json:"eventName" form:"eventName"`
	EventDate   string        `json:"eventDate" form:"eventDate"`
	EventTime   string        `json:"eventTime" form:"eventTime"`
	Location    string        `json:"location" form:"location"`
	Amount      *float64      `json:"amount" form:"amount"`
	Status      BookingStatus `json:"status" form:"status" gorm:"default:pending"`
	Notes       string        `json:"notes" form:"notes"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type Event struct {
	Id          int         `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string      `json:"title" form:"title"`
	Description string      `json:"description" form:"description"`
	Date        string      `json:"date" form:"date"`
	StartTime   string      `json:"startTime" form:"startTime"`
	EndTime     string      `json:"endTime" form:"endTime"`
	Venue       string      `json:"venue" form:"venue"`
	Location    string      `json:"location" form:"location"`
	Capacity    int         `json:"capacity" form:"capacity"`
	Price       float64     `json:"price" form:"price"`
	Status      EventStatus `json:"status" form:"status" gorm:"default:scheduled"`
	PosterPath  string      `json:"posterPath"`
	CreatedBy   int         `json:"createdBy"`
	SeatsBooked int         `json:"seatsBooked" gorm:"default:0"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Expense struct {
	Id          int           `json:"id" gorm:"primaryKey;autoIncrement"`
	Category    string        `json:"category" form:"category"`
	Amount      float64       `json:"amount" form:"amount"`
	Date        string        `json:"date" form:"date"`
	Reference   string        `json:"reference" form:"reference"`
	Notes       string        `json:"notes" form:"notes"`
	ReceiptPath string        `json:"receiptPath"`
	Status      ExpenseStatus `json:"status" form:"status" gorm:"default:pending"`
	SubmittedBy int           `json:"submittedBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type Merchandise struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" form:"name"`
	Sku         string    `json:"sku" form:"sku" gorm:"uniqueIndex"`
	Price       float64   `json:"price" form:"price"`
	Stock       int       `json:"stock" form:"stock"`
	Description string    `json:"description" form:"description"`
	ImagePath   string    `json:"imagePath"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Task struct {
	Id          int          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string       `json:"title" form:"title"`
	Description string       `json:"description" form:"description"`
	AssigneeId  *int         `json:"assigneeId" form:"assigneeId"`
	DueDate     string       `json:"dueDate" form:"dueDate"`
	Priority    TaskPriority `json:"priority" form:"priority" gorm:"default:medium"`
	Status      TaskStatus   `json:"status" form:"status" gorm:"default:todo"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
