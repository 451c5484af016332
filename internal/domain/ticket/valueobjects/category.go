package valueobjects

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Category string

const (
	CategoryTechnicalIssue       Category = "technical_issue"
	CategoryNetworkConnectivity  Category = "network_connectivity"
	CategorySoftwareInstallation Category = "software_installation"
	CategoryHardwareRepair       Category = "hardware_repair"
	CategoryVirusRemoval         Category = "virus_removal"
	CategoryDataRecovery         Category = "data_recovery"
	CategoryEmailSetup           Category = "email_setup"
	CategoryWebsiteIssue         Category = "website_issue"
	CategoryAccountAccess        Category = "account_access"
	CategoryPasswordReset        Category = "password_reset"
	CategorySecurityAudit        Category = "security_audit"
	CategoryCloudServices        Category = "cloud_services"
	CategoryBackupSetup          Category = "backup_setup"
	CategoryPrinterSetup         Category = "printer_setup"
	CategoryMobileDevice         Category = "mobile_device"
	CategoryRemoteSupport        Category = "remote_support"
	CategoryConsultation         Category = "consultation"
	CategoryBilling              Category = "billing"
	CategoryGovernmentServices   Category = "government_services"
	CategoryOther                Category = "other"
)

var validCategories = map[Category]bool{}

func init() {
	for _, c := range AllCategories() {
		validCategories[c] = true
	}
}

func AllCategories() []Category {
	return []Category{
		CategoryTechnicalIssue, CategoryNetworkConnectivity, CategorySoftwareInstallation,
		CategoryHardwareRepair, CategoryVirusRemoval, CategoryDataRecovery, CategoryEmailSetup,
		CategoryWebsiteIssue, CategoryAccountAccess, CategoryPasswordReset, CategorySecurityAudit,
		CategoryCloudServices, CategoryBackupSetup, CategoryPrinterSetup, CategoryMobileDevice,
		CategoryRemoteSupport, CategoryConsultation, CategoryBilling, CategoryGovernmentServices,
		CategoryOther,
	}
}

// legacyCategories maps spellings found in older records and frontends,
// already folded by normalizeToken.
var legacyCategories = map[string]Category{
	"technical":             CategoryTechnicalIssue,
	"technical_support":     CategoryTechnicalIssue,
	"tech_support":          CategoryTechnicalIssue,
	"technical_issues":      CategoryTechnicalIssue,
	"computer_repair":       CategoryHardwareRepair,
	"hardware":              CategoryHardwareRepair,
	"hardware_issue":        CategoryHardwareRepair,
	"network":               CategoryNetworkConnectivity,
	"networking":            CategoryNetworkConnectivity,
	"internet":              CategoryNetworkConnectivity,
	"wifi":                  CategoryNetworkConnectivity,
	"software":              CategorySoftwareInstallation,
	"software_issue":        CategorySoftwareInstallation,
	"installation":          CategorySoftwareInstallation,
	"virus":                 CategoryVirusRemoval,
	"malware":               CategoryVirusRemoval,
	"virus_and_malware":     CategoryVirusRemoval,
	"virus_malware_removal": CategoryVirusRemoval,
	"data":                  CategoryDataRecovery,
	"recovery":              CategoryDataRecovery,
	"email":                 CategoryEmailSetup,
	"email_issue":           CategoryEmailSetup,
	"website":               CategoryWebsiteIssue,
	"web":                   CategoryWebsiteIssue,
	"web_development":       CategoryWebsiteIssue,
	"account":               CategoryAccountAccess,
	"login":                 CategoryAccountAccess,
	"password":              CategoryPasswordReset,
	"security":              CategorySecurityAudit,
	"cybersecurity":         CategorySecurityAudit,
	"cloud":                 CategoryCloudServices,
	"backup":                CategoryBackupSetup,
	"printer":               CategoryPrinterSetup,
	"mobile":                CategoryMobileDevice,
	"phone":                 CategoryMobileDevice,
	"remote":                CategoryRemoteSupport,
	"remote_assistance":     CategoryRemoteSupport,
	"consulting":            CategoryConsultation,
	"payment":               CategoryBilling,
	"billing_and_payments":  CategoryBilling,
	"government":            CategoryGovernmentServices,
	"government_service":    CategoryGovernmentServices,
	"ecitizen":              CategoryGovernmentServices,
	"general":               CategoryOther,
	"general_inquiry":       CategoryOther,
	"others":                CategoryOther,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

// Label renders the category for emails and subjects, e.g. "Technical Issue".
func (c Category) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}

// NormalizeCategory maps any accepted spelling to its canonical category.
// The boolean is false when the input is neither canonical nor a known alias.
func NormalizeCategory(s string) (Category, bool) {
	token := normalizeToken(s)
	if c := Category(token); c.IsValid() {
		return c, true
	}
	if c, ok := legacyCategories[token]; ok {
		return c, true
	}
	return "", false
}

// ParseCategory is NormalizeCategory returning an error for unknown input.
func ParseCategory(s string) (Category, error) {
	c, ok := NormalizeCategory(s)
	if !ok {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
