package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"chessrules/internal/engine"
	"chessrules/internal/report"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

func cellColor(row, col int, pc *engine.Piece) *color.Color {
	bg := color.BgHiYellow
	if (row+col)%2 == 1 {
		bg = color.BgYellow
	}
	if pc != nil && pc.Color == engine.White {
		return color.New(bg, color.FgHiWhite, color.Bold)
	}
	return color.New(bg, color.FgBlack)
}

func main() {
	rl, err := readline.New("chess> ")
	if err != nil {
		log.Fatalf("readline: %v", err)
	}
	defer rl.Close()

	game := engine.NewGame()
	fmt.Println("Local two-player chess. Moves like e2e4, promotions like e7e8q.")
	fmt.Println("Commands: board, moves, history, new, quit.")
	printBoard(game)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return
		}
		if err != nil {
			log.Fatalf("readline: %v", err)
		}

		input := strings.TrimSpace(strings.ToLower(line))
		switch input {
		case "":
			continue
		case "quit", "exit":
			return
		case "board":
			printBoard(game)
			continue
		case "new":
			game.ResetGame()
			printBoard(game)
			continue
		case "moves":
			for _, mv := range game.GetAllValidMoves(game.Turn()) {
				fmt.Printf("%s%s ", squareName(mv.From), squareName(mv.To))
			}
			fmt.Println()
			continue
		case "history":
			for i, rec := range game.GetGameState().MoveHistory {
				fmt.Printf("%d. %s\n", i+1, rec.Notation)
			}
			continue
		}

		mv, err := parseMove(input)
		if err != nil {
			fmt.Println(err)
			continue
		}

		res, moveErr := game.MakeMove(mv)
		if moveErr != nil {
			result := report.FromError(moveErr)
			fmt.Printf("%s [%s]\n", result.Message, result.ErrorCode)
			for _, s := range result.Suggestions {
				fmt.Printf("  hint: %s\n", s)
			}
			continue
		}

		printBoard(game)
		fmt.Printf("%s  (%s to move)\n", res.Move.Notation, res.CurrentTurn)
		switch res.GameStatus {
		case engine.StatusCheckmate:
			fmt.Printf("Checkmate. %s wins.\n", res.Winner)
			return
		case engine.StatusStalemate:
			fmt.Println("Stalemate.")
			return
		case engine.StatusCheck:
			fmt.Println("Check.")
		}
	}
}

// parseMove reads coordinate notation: from-square, to-square, and an
// optional promotion letter, e.g. "e2e4" or "a7a8q".
func parseMove(input string) (engine.Move, error) {
	if len(input) != 4 && len(input) != 5 {
		return engine.Move{}, fmt.Errorf("cannot parse %q: expected a move like e2e4", input)
	}
	from, ok := parseSquare(input[0:2])
	if !ok {
		return engine.Move{}, fmt.Errorf("bad origin square %q", input[0:2])
	}
	to, ok := parseSquare(input[2:4])
	if !ok {
		return engine.Move{}, fmt.Errorf("bad destination square %q", input[2:4])
	}
	mv := engine.Move{From: from, To: to}
	if len(input) == 5 {
		promo, ok := promotionFromLetter(input[4])
		if !ok {
			return engine.Move{}, fmt.Errorf("bad promotion letter %q: use q, r, b, or n", input[4])
		}
		mv.Promotion = promo
	}
	return mv, nil
}

func parseSquare(s string) (engine.Position, bool) {
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return engine.Position{}, false
	}
	return engine.Position{Row: int('8' - s[1]), Col: int(s[0] - 'a')}, true
}

func squareName(p engine.Position) string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, 8-p.Row)
}

func promotionFromLetter(b byte) (engine.PieceType, bool) {
	switch b {
	case 'q':
		return engine.Queen, true
	case 'r':
		return engine.Rook, true
	case 'b':
		return engine.Bishop, true
	case 'n':
		return engine.Knight, true
	}
	return "", false
}

func pieceLetter(pc *engine.Piece) string {
	var letter string
	switch pc.Type {
	case engine.King:
		letter = "k"
	case engine.Queen:
		letter = "q"
	case engine.Rook:
		letter = "r"
	case engine.Bishop:
		letter = "b"
	case engine.Knight:
		letter = "n"
	case engine.Pawn:
		letter = "p"
	}
	if pc.Color == engine.White {
		return strings.ToUpper(letter)
	}
	return letter
}

func printBoard(game *engine.Game) {
	grid := game.GetGameState().Board
	fmt.Println("   a  b  c  d  e  f  g  h")
	for row := 0; row < 8; row++ {
		fmt.Printf("%d ", 8-row)
		for col := 0; col < 8; col++ {
			pc := grid[row][col]
			cell := " "
			if pc != nil {
				cell = pieceLetter(pc)
			}
			cellColor(row, col, pc).Printf(" %s ", cell)
		}
		fmt.Printf(" %d\n", 8-row)
	}
	fmt.Println("   a  b  c  d  e  f  g  h")
}
