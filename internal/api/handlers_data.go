package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/luna/internal/services"
)

func (handler *Handler) Export(c *fiber.Ctx) error {
	format := strings.ToLower(strings.TrimSpace(c.Query("format", services.ExportFormatJSON)))

	now := handler.now().In(handler.location)
	bundle, err := handler.exports.BuildBundle(now)
	if err != nil {
		return serviceError(c, err)
	}
	rendered, err := handler.exports.Render(bundle, format)
	if err != nil {
		return serviceError(c, err)
	}

	setExportAttachmentHeaders(c, services.ExportContentType(format), buildExportFilename(now, format))
	return c.Send(rendered)
}

// Import accepts a JSON or YAML bundle. The format follows the request
// content type unless a format query value is given.
func (handler *Handler) Import(c *fiber.Ctx) error {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = services.ExportFormatJSON
		if strings.Contains(strings.ToLower(c.Get(fiber.HeaderContentType)), "yaml") {
			format = services.ExportFormatYAML
		}
	}

	bundle, err := services.DecodeBundle(c.Body(), format)
	if err != nil {
		return serviceError(c, err)
	}
	if err := handler.exports.ImportBundle(bundle); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.exports.ClearAllData(); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
