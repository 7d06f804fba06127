package controller

import (
	"chessrules/internal/engine"
	"chessrules/internal/report"
	"chessrules/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// moveRequest is the REST move body. Coordinate fields are pointers so the
// required tag can tell a missing field from a legitimate zero.
type moveRequest struct {
	From      *coordinate `json:"from" validate:"required"`
	To        *coordinate `json:"to" validate:"required"`
	Promotion string      `json:"promotion"`
}

type coordinate struct {
	Row *int `json:"row" validate:"required,min=0,max=7"`
	Col *int `json:"col" validate:"required,min=0,max=7"`
}

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if err.Error() == "game not found" {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		if err.Error() == "game not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game state",
		})
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	color := engine.Color(c.Query("color"))

	moves, err := gc.gameService.GetLegalMoves(gameID, color)
	if err != nil {
		status := fiber.StatusBadRequest
		if err.Error() == "game not found" {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"color": color,
		"moves": moves,
	})
}

// MakeMove validates the body shape before the engine sees it; format and
// coordinate-type failures never reach the rules pipeline.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			report.CreateError(engine.ErrMalformedMove, map[string]any{"parseError": err.Error()}))
	}
	if result := validateMoveRequest(&req); result != nil {
		return c.Status(fiber.StatusBadRequest).JSON(result)
	}

	mv := engine.Move{
		From:      engine.Position{Row: *req.From.Row, Col: *req.From.Col},
		To:        engine.Position{Row: *req.To.Row, Col: *req.To.Col},
		Promotion: engine.PieceType(req.Promotion),
	}

	result, err := gc.gameService.HandleMove(gameID, playerID, mv)
	if err != nil {
		if err.Error() == "game not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(report.FromError(err))
	}
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}
	return c.JSON(result)
}

// validateMoveRequest maps validator failures onto the format/coordinate
// error codes. Returns nil when the request is well formed.
func validateMoveRequest(req *moveRequest) *report.Result {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return report.CreateError(engine.ErrInvalidFormat, map[string]any{"error": err.Error()})
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return report.CreateError(engine.ErrMissingRequiredField, map[string]any{"field": fe.Field()})
		case "min", "max":
			return report.CreateError(engine.ErrInvalidCoordinates, map[string]any{"field": fe.Field(), "value": fe.Value()})
		}
	}
	return report.CreateError(engine.ErrInvalidFormat, map[string]any{"error": verrs.Error()})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to join matchmaking",
		})
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}
