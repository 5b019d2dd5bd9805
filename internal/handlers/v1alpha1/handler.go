package v1alpha1

import (
	"github.com/apatilgtn/Kairos-isdp-sub001/internal/service"
)

type ServiceHandler struct {
	exportSrv *service.ExportService
}

func NewServiceHandler(exportSrv *service.ExportService) *ServiceHandler {
	return &ServiceHandler{exportSrv: exportSrv}
}
