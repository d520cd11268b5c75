package worker

import (
	"github.com/spec-kit/directory-admin/internal/service"
)

// StartAuditWorker registers the audit stream subscriber.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
