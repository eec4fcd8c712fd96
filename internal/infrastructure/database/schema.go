package database

// Schema bootstrap for the embedded backend. The remote backend never runs
// DDL here: its schema is provisioned by the deployment target's own
// migration process, and that asymmetry is deliberate.
//
// Statements are applied one at a time, in order, so a partial failure
// names the statement that broke instead of an opaque script position.

type ddlStatement struct {
	name string
	sql  string
}

var sqlitePragmas = []ddlStatement{
	{"journal_mode", `PRAGMA journal_mode = WAL`},
	{"foreign_keys", `PRAGMA foreign_keys = ON`},
	{"busy_timeout", `PRAGMA busy_timeout = 5000`},
}

var sqliteSchema = []ddlStatement{
	{"Manufacturers", `
CREATE TABLE IF NOT EXISTS Manufacturers (
	ManufacturerID INTEGER PRIMARY KEY AUTOINCREMENT,
	Name NVARCHAR(255) NOT NULL UNIQUE,
	Website NVARCHAR(500),
	ContactEmail NVARCHAR(255),
	CreatedDate DATETIME DEFAULT CURRENT_TIMESTAMP
)`},
	{"Resellers", `
CREATE TABLE IF NOT EXISTS Resellers (
	ResellerID INTEGER PRIMARY KEY AUTOINCREMENT,
	Name NVARCHAR(255) NOT NULL UNIQUE,
	ContactName NVARCHAR(255),
	ContactEmail NVARCHAR(255),
	Phone NVARCHAR(50),
	CreatedDate DATETIME DEFAULT CURRENT_TIMESTAMP
)`},
	{"SoftwareTitles", `
CREATE TABLE IF NOT EXISTS SoftwareTitles (
	TitleID INTEGER PRIMARY KEY AUTOINCREMENT,
	TitleName NVARCHAR(255) NOT NULL,
	ManufacturerID INTEGER,
	ResellerID INTEGER,
	Category NVARCHAR(100),
	Notes TEXT,
	IsDecommissioned INTEGER DEFAULT 0,
	CreatedDate DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (ManufacturerID) REFERENCES Manufacturers(ManufacturerID),
	FOREIGN KEY (ResellerID) REFERENCES Resellers(ResellerID)
)`},
	{"Licenses", `
CREATE TABLE IF NOT EXISTS Licenses (
	LicenseID INTEGER PRIMARY KEY AUTOINCREMENT,
	TitleID INTEGER NOT NULL,
	PONumber NVARCHAR(100) NOT NULL,
	LicenseType NVARCHAR(50) NOT NULL CHECK(LicenseType IN ('Perpetual','Subscription')),
	Quantity INTEGER NOT NULL DEFAULT 1 CHECK(Quantity >= 1),
	CurrencyCode CHAR(3) DEFAULT 'USD',
	Cost DECIMAL(18,2),
	CostCenter NVARCHAR(100),
	LicenseKey TEXT,
	PurchaseDate DATETIME,
	ExpirationDate DATETIME,
	AssetMapping TEXT,
	Notes TEXT,
	CreatedDate DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (TitleID) REFERENCES SoftwareTitles(TitleID)
)`},
	{"SupportContracts", `
CREATE TABLE IF NOT EXISTS SupportContracts (
	SupportID INTEGER PRIMARY KEY AUTOINCREMENT,
	LicenseID INTEGER UNIQUE NOT NULL,
	PONumber NVARCHAR(100) NOT NULL,
	VendorName NVARCHAR(255),
	StartDate DATETIME,
	EndDate DATETIME NOT NULL,
	Cost DECIMAL(18,2),
	CurrencyCode CHAR(3) DEFAULT 'USD',
	CostCenter NVARCHAR(100),
	Notes TEXT,
	CreatedDate DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (LicenseID) REFERENCES Licenses(LicenseID)
)`},
	{"Attachments", `
CREATE TABLE IF NOT EXISTS Attachments (
	AttachmentID INTEGER PRIMARY KEY AUTOINCREMENT,
	TitleID INTEGER,
	LicenseID INTEGER,
	SupportID INTEGER,
	FileName NVARCHAR(500) NOT NULL,
	OriginalName NVARCHAR(500) NOT NULL,
	FilePath NVARCHAR(1000) NOT NULL,
	FileSize INTEGER,
	MimeType NVARCHAR(100),
	UploadDate DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (TitleID) REFERENCES SoftwareTitles(TitleID),
	FOREIGN KEY (LicenseID) REFERENCES Licenses(LicenseID),
	FOREIGN KEY (SupportID) REFERENCES SupportContracts(SupportID)
)`},
	{"Users", `
CREATE TABLE IF NOT EXISTS Users (
	UserID INTEGER PRIMARY KEY AUTOINCREMENT,
	Username NVARCHAR(100) NOT NULL UNIQUE,
	DisplayName NVARCHAR(255) NOT NULL,
	Email NVARCHAR(255),
	Role NVARCHAR(50) NOT NULL CHECK(Role IN ('SystemAdmin','SoftwareAdmin','LicenseViewer')),
	IsActive INTEGER DEFAULT 1,
	CreatedDate DATETIME DEFAULT CURRENT_TIMESTAMP
)`},
	{"AppSettings", `
CREATE TABLE IF NOT EXISTS AppSettings (
	SettingKey NVARCHAR(100) PRIMARY KEY,
	SettingValue TEXT,
	Description NVARCHAR(500),
	UpdatedDate DATETIME DEFAULT CURRENT_TIMESTAMP
)`},
	{"CostCenters", `
CREATE TABLE IF NOT EXISTS CostCenters (
	CostCenterID INTEGER PRIMARY KEY AUTOINCREMENT,
	Name NVARCHAR(100) NOT NULL UNIQUE,
	Department NVARCHAR(100),
	IsActive INTEGER DEFAULT 1
)`},
	{"Currencies", `
CREATE TABLE IF NOT EXISTS Currencies (
	CurrencyCode CHAR(3) PRIMARY KEY,
	CurrencyName NVARCHAR(100) NOT NULL
)`},
}

// Reference data matching the remote backend's seed migration. INSERT OR
// IGNORE keeps reopening a populated database a no-op.
var sqliteSeed = []ddlStatement{
	{"currencies", `
INSERT OR IGNORE INTO Currencies (CurrencyCode, CurrencyName) VALUES
	('USD', 'US Dollar'),
	('EUR', 'Euro'),
	('GBP', 'British Pound'),
	('CAD', 'Canadian Dollar'),
	('AUD', 'Australian Dollar'),
	('JPY', 'Japanese Yen')`},
	{"bootstrap_admin", `
INSERT OR IGNORE INTO Users (Username, DisplayName, Role, IsActive)
VALUES ('admin', 'Administrator', 'SystemAdmin', 1)`},
	{"default_settings", `
INSERT OR IGNORE INTO AppSettings (SettingKey, SettingValue, Description) VALUES
	('company_name', '', 'Company name shown in report headers'),
	('default_currency', 'USD', 'Currency assumed when a purchase omits one'),
	('expiration_warning_days', '60', 'Default expirations report lookahead')`},
}
